package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/turntable/internal/domain"
	"github.com/mmcdole/turntable/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// pickerWidth is the modal's inner width
const pickerWidth = 40

// SetPicker is a fuzzy-filtered list of frame sets
type SetPicker struct {
	visible bool
	sets    []domain.FrameSet
	input   textinput.Model

	// Indices into sets matching the filter, with matched byte positions
	filtered []int
	matches  map[int][]int

	cursor     int
	offset     int
	maxVisible int
}

// NewSetPicker creates a picker over sets
func NewSetPicker(sets []domain.FrameSet) SetPicker {
	ti := textinput.New()
	ti.Placeholder = "Filter sets..."
	ti.CharLimit = 64
	ti.Width = pickerWidth - 2
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.PlaceholderStyle = styles.DimStyle

	p := SetPicker{
		sets:       sets,
		input:      ti,
		maxVisible: 10,
	}
	p.applyFilter()
	return p
}

// Show displays the picker with an empty filter
func (p *SetPicker) Show() {
	p.visible = true
	p.input.SetValue("")
	p.input.Focus()
	p.applyFilter()
}

// Hide dismisses the picker
func (p *SetPicker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p SetPicker) IsVisible() bool {
	return p.visible
}

// SetHeight fits the list to the available rows
func (p *SetPicker) SetHeight(height int) {
	// Border, padding, title and filter rows
	p.maxVisible = max(1, height-8)
	p.adjustOffset()
}

// Selected returns the highlighted set
func (p SetPicker) Selected() (domain.FrameSet, bool) {
	if p.cursor < 0 || p.cursor >= len(p.filtered) {
		return domain.FrameSet{}, false
	}
	return p.sets[p.filtered[p.cursor]], true
}

// Update handles input events, returns (picker, cmd, chosen)
func (p SetPicker) Update(msg tea.Msg) (SetPicker, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, PickerKeys.Select):
			_, ok := p.Selected()
			return p, nil, ok
		case key.Matches(keyMsg, PickerKeys.Up):
			if p.cursor > 0 {
				p.cursor--
				p.adjustOffset()
			}
			return p, nil, false
		case key.Matches(keyMsg, PickerKeys.Down):
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
				p.adjustOffset()
			}
			return p, nil, false
		case key.Matches(keyMsg, PickerKeys.Home):
			p.cursor = 0
			p.adjustOffset()
			return p, nil, false
		case key.Matches(keyMsg, PickerKeys.End):
			p.cursor = max(0, len(p.filtered)-1)
			p.adjustOffset()
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.applyFilter()
	}
	return p, cmd, false
}

func (p *SetPicker) applyFilter() {
	query := strings.ToLower(p.input.Value())
	p.cursor = 0
	p.offset = 0
	p.matches = nil

	if query == "" {
		p.filtered = make([]int, len(p.sets))
		for i := range p.sets {
			p.filtered[i] = i
		}
		return
	}

	// Matching folds case itself; positions index the original names
	names := make([]string, len(p.sets))
	for i, s := range p.sets {
		names[i] = s.Name
	}

	found := fuzzy.Find(query, names)
	p.filtered = make([]int, len(found))
	p.matches = make(map[int][]int, len(found))
	for i, m := range found {
		p.filtered[i] = m.Index
		p.matches[m.Index] = m.MatchedIndexes
	}
}

func (p *SetPicker) adjustOffset() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.maxVisible {
		p.offset = p.cursor - p.maxVisible + 1
	}
}

// View renders the picker modal
func (p SetPicker) View() string {
	if !p.visible {
		return ""
	}

	rows := []string{
		styles.ModalTitleStyle.Render("Frame sets"),
		p.input.View(),
		"",
	}

	if len(p.filtered) == 0 {
		rows = append(rows, styles.DimStyle.Render("No matching sets"))
	}

	end := min(p.offset+p.maxVisible, len(p.filtered))
	for i := p.offset; i < end; i++ {
		idx := p.filtered[i]
		rows = append(rows, p.renderRow(idx, i == p.cursor))
	}

	return styles.ModalStyle.Width(pickerWidth + 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p SetPicker) renderRow(idx int, selected bool) string {
	set := p.sets[idx]
	base := styles.NormalItemStyle
	highlight := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedItemStyle
		highlight = styles.MatchHighlightSelectedStyle
	}

	desc := set.Description()
	nameWidth := pickerWidth - len(desc) - 3
	name := styles.Truncate(set.Name, nameWidth)

	// Highlight matched bytes in the name
	matched := make(map[int]bool, len(p.matches[idx]))
	for _, m := range p.matches[idx] {
		matched[m] = true
	}
	plain := base.UnsetPadding()
	var b strings.Builder
	for i, r := range name {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(plain.Render(string(r)))
		}
	}

	gap := max(1, pickerWidth-lipgloss.Width(name)-len(desc)-2)
	line := b.String() + plain.Render(strings.Repeat(" ", gap)) + styles.DimStyle.Render(desc)
	return base.Render(line)
}
