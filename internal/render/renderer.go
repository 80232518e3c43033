package render

import (
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// upperHalf is drawn with the top pixel as foreground and the bottom pixel
// as background
const upperHalf = "▀"

// asciiRamp orders characters from darkest to brightest
const asciiRamp = " .:-=+*#%@"

// cacheKey identifies one rendering of a frame
type cacheKey struct {
	key           string
	width, height int
}

// Renderer draws pictures with a fixed strategy and caches the results.
type Renderer struct {
	strategy Strategy

	mu    sync.Mutex
	cache map[cacheKey]string
}

// NewRenderer creates a renderer for strategy
func NewRenderer(strategy Strategy) *Renderer {
	return &Renderer{
		strategy: strategy,
		cache:    make(map[cacheKey]string),
	}
}

// Strategy returns the renderer's strategy
func (r *Renderer) Strategy() Strategy {
	return r.strategy
}

// Render draws img to fit within width x height cells, keeping its aspect
// ratio. key identifies img for caching, typically the frame url.
func (r *Renderer) Render(key string, img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}

	ck := cacheKey{key: key, width: width, height: height}
	r.mu.Lock()
	if out, ok := r.cache[ck]; ok {
		r.mu.Unlock()
		return out
	}
	r.mu.Unlock()

	scaled := fit(img, width, height*2)

	var out string
	switch r.strategy {
	case Accelerated:
		out = halfBlocks(scaled)
	default:
		out = ascii(scaled)
	}

	r.mu.Lock()
	r.cache[ck] = out
	r.mu.Unlock()
	return out
}

// Cached returns the number of cached renderings
func (r *Renderer) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Reset drops every cached rendering
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.cache = make(map[cacheKey]string)
	r.mu.Unlock()
}

// fit scales img into a w x h pixel box, preserving aspect ratio. The
// result always has an even height so pixel rows pair into cells.
func fit(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	iw, ih := b.Dx(), b.Dy()
	if iw == 0 || ih == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 2))
	}

	scale := min(float64(w)/float64(iw), float64(h)/float64(ih))
	dw := max(1, int(float64(iw)*scale))
	dh := max(2, int(float64(ih)*scale)&^1)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// halfBlocks renders two pixel rows per line. Runs of identical cells share
// one style to keep the escape sequences short.
func halfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	lines := make([]string, 0, b.Dy()/2)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		runStart := b.Min.X
		var runFg, runBg string

		flush := func(end int) {
			if end <= runStart {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runFg)).
				Background(lipgloss.Color(runBg))
			line.WriteString(style.Render(strings.Repeat(upperHalf, end-runStart)))
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			fg := hex(img.At(x, y))
			bg := hex(img.At(x, y+1))
			if x == b.Min.X {
				runFg, runBg = fg, bg
				continue
			}
			if fg != runFg || bg != runBg {
				flush(x)
				runStart = x
				runFg, runBg = fg, bg
			}
		}
		flush(b.Max.X)
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// ascii renders one character per cell from the average lightness of the
// cell's two pixels
func ascii(img *image.RGBA) string {
	b := img.Bounds()
	lines := make([]string, 0, b.Dy()/2)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			l := (lightness(img.At(x, y)) + lightness(img.At(x, y+1))) / 2
			idx := int(math.Round(l * float64(len(asciiRamp)-1)))
			idx = min(max(idx, 0), len(asciiRamp)-1)
			line.WriteByte(asciiRamp[idx])
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// hex returns the colour as #rrggbb, transparent pixels as black
func hex(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cc.Clamped().Hex()
}

// lightness returns CIE L* in [0, 1], transparent pixels as 0
func lightness(c color.Color) float64 {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	l, _, _ := cc.Lab()
	return l
}
