package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mmcdole/turntable/internal/adapter"
	"github.com/mmcdole/turntable/internal/domain"
)

func testSets() *SetService {
	return NewSetService([]domain.FrameSet{
		{Name: "sneaker", URLs: []string{"s0.png", "s1.png"}},
		{Name: "teapot", URLs: []string{"t0.png"}},
		{Name: "snowglobe", URLs: []string{"g0.png"}},
	}, adapter.NullLogger())
}

func TestFindIgnoresCase(t *testing.T) {
	set, err := testSets().Find("TeaPot")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if set.Name != "teapot" {
		t.Errorf("found %q", set.Name)
	}
}

func TestFindSuggestsCloseNames(t *testing.T) {
	_, err := testSets().Find("snekaer")
	if !errors.Is(err, domain.ErrSetNotFound) {
		t.Fatalf("err = %v, want ErrSetNotFound", err)
	}
	if !strings.Contains(err.Error(), "did you mean sneaker") {
		t.Errorf("err = %q, want a sneaker suggestion", err)
	}
}

func TestFindWithoutSuggestions(t *testing.T) {
	_, err := testSets().Find("zzzzzzzzzz")
	if !errors.Is(err, domain.ErrSetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("unexpected suggestion in %q", err)
	}
}

func TestSuggestSubsequence(t *testing.T) {
	got := testSets().Suggest("sn")
	want := []string{"sneaker", "snowglobe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest = %v, want %v", got, want)
	}
	if got := testSets().Suggest("  "); got != nil {
		t.Errorf("blank query suggested %v", got)
	}
}
