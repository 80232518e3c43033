package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/mmcdole/turntable/internal/adapter"
	"github.com/mmcdole/turntable/internal/domain"
	"github.com/mmcdole/turntable/internal/store"
)

// countingFetcher serves fixed bytes per url and counts requests
type countingFetcher struct {
	data  map[string][]byte
	calls int
}

func (f *countingFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls++
	data, ok := f.data[url]
	if !ok {
		return nil, domain.ErrFrameUnavailable
	}
	return data, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newMemoryStore(t *testing.T) *store.FrameStore {
	t.Helper()
	s, err := store.NewFrameStore("")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadReadsThroughCache(t *testing.T) {
	fetcher := &countingFetcher{data: map[string][]byte{"0.png": pngBytes(t, 3, 2)}}
	svc := NewFrameService(fetcher, newMemoryStore(t), adapter.NullLogger())

	for i := 0; i < 3; i++ {
		img, err := svc.Load(context.Background(), "0.png")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
			t.Errorf("bounds = %v", b)
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestUndecodableFrameNotCached(t *testing.T) {
	fetcher := &countingFetcher{data: map[string][]byte{"bad.png": []byte("not an image")}}
	st := newMemoryStore(t)
	svc := NewFrameService(fetcher, st, adapter.NullLogger())

	if _, err := svc.Load(context.Background(), "bad.png"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := st.GetFrame("bad.png"); ok {
		t.Error("undecodable frame was cached")
	}
}

func TestCorruptCacheEntryRefetched(t *testing.T) {
	fetcher := &countingFetcher{data: map[string][]byte{"0.png": pngBytes(t, 1, 1)}}
	st := newMemoryStore(t)
	if err := st.SaveFrame("0.png", []byte("garbage")); err != nil {
		t.Fatal(err)
	}
	svc := NewFrameService(fetcher, st, adapter.NullLogger())

	if _, err := svc.Load(context.Background(), "0.png"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestLoadErrors(t *testing.T) {
	svc := NewFrameService(&countingFetcher{}, nil, adapter.NullLogger())

	if _, err := svc.Load(context.Background(), ""); !errors.Is(err, domain.ErrEmptyURL) {
		t.Errorf("empty url err = %v", err)
	}
	if _, err := svc.Load(context.Background(), "missing.png"); !errors.Is(err, domain.ErrFrameUnavailable) {
		t.Errorf("missing err = %v", err)
	}
}
