package store

import (
	"bytes"
	"testing"
)

func TestMemoryOnlyStore(t *testing.T) {
	s, err := NewFrameStore("")
	if err != nil {
		t.Fatalf("NewFrameStore: %v", err)
	}
	defer s.Close()

	if _, ok := s.GetFrame("a.png"); ok {
		t.Fatal("empty store returned a frame")
	}
	if err := s.SaveFrame("a.png", []byte("abc")); err != nil {
		t.Fatalf("SaveFrame: %v", err)
	}
	data, ok := s.GetFrame("a.png")
	if !ok || !bytes.Equal(data, []byte("abc")) {
		t.Fatalf("GetFrame = %q, %v", data, ok)
	}

	count, size := s.Stats()
	if count != 1 || size != 3 {
		t.Errorf("Stats = %d, %d", count, size)
	}

	s.InvalidateFrame("a.png")
	if _, ok := s.GetFrame("a.png"); ok {
		t.Error("frame survived InvalidateFrame")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFrameStore(dir)
	if err != nil {
		t.Fatalf("NewFrameStore: %v", err)
	}
	if err := s.SaveFrame("http://example.com/0.png", []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("SaveFrame: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = NewFrameStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	data, ok := s.GetFrame("http://example.com/0.png")
	if !ok || !bytes.Equal(data, []byte{1, 2, 3, 4}) {
		t.Fatalf("GetFrame after reopen = %v, %v", data, ok)
	}

	count, size := s.Stats()
	if count != 1 || size != 4 {
		t.Errorf("Stats = %d, %d", count, size)
	}
}

func TestInvalidateAll(t *testing.T) {
	s, err := NewFrameStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFrameStore: %v", err)
	}
	defer s.Close()

	for _, u := range []string{"a", "b", "c"} {
		if err := s.SaveFrame(u, []byte(u)); err != nil {
			t.Fatalf("SaveFrame(%s): %v", u, err)
		}
	}

	s.InvalidateAll()

	for _, u := range []string{"a", "b", "c"} {
		if _, ok := s.GetFrame(u); ok {
			t.Errorf("frame %q survived InvalidateAll", u)
		}
	}
	if count, _ := s.Stats(); count != 0 {
		t.Errorf("Stats count = %d after InvalidateAll", count)
	}
}
