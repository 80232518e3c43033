package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/turntable/internal/domain"
)

func typeQuery(p SetPicker, query string) SetPicker {
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(query)})
	return p
}

func TestPickerFilters(t *testing.T) {
	p := NewSetPicker([]domain.FrameSet{
		{Name: "Red Shoe"},
		{Name: "Blue Mug"},
		{Name: "Teapot"},
	})
	p.Show()

	p = typeQuery(p, "mug")
	if len(p.filtered) != 1 {
		t.Fatalf("filtered = %v, want one match", p.filtered)
	}
	set, ok := p.Selected()
	if !ok || set.Name != "Blue Mug" {
		t.Errorf("selected = %q, %v; want Blue Mug", set.Name, ok)
	}

	_, _, chosen := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !chosen {
		t.Error("enter should choose the selected set")
	}
}

func TestPickerMatchPositionsIndexOriginalName(t *testing.T) {
	// İ lower-cases to a longer byte sequence
	name := "İstanbul Mug"
	p := NewSetPicker([]domain.FrameSet{{Name: name}})
	p.Show()

	p = typeQuery(p, "mug")
	positions := p.matches[0]
	if len(positions) != 3 {
		t.Fatalf("positions = %v, want 3", positions)
	}
	var got strings.Builder
	for _, i := range positions {
		got.WriteByte(name[i])
	}
	if got.String() != "Mug" {
		t.Errorf("highlighted %q, want Mug", got.String())
	}
}

func TestPickerNavigation(t *testing.T) {
	p := NewSetPicker([]domain.FrameSet{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	p.Show()

	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if set, _ := p.Selected(); set.Name != "c" {
		t.Errorf("end selected %q, want c", set.Name)
	}
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if set, _ := p.Selected(); set.Name != "b" {
		t.Errorf("up selected %q, want b", set.Name)
	}
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyHome})
	if set, _ := p.Selected(); set.Name != "a" {
		t.Errorf("home selected %q, want a", set.Name)
	}
}
