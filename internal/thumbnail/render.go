package thumbnail

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ygelfand/vidstrip/internal/timecode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	Width          = 120
	Height         = 68
	Quality        = 80
	LoadingQuality = 70

	hueStart = 200.0
	hueRange = 160.0
)

type gradientStop struct {
	offset float64
	sat    float64
	light  float64
}

var (
	enhancedStops = []gradientStop{
		{0, 0.6, 0.25},
		{0.3, 0.7, 0.20},
		{0.7, 0.8, 0.15},
		{1, 0.9, 0.10},
	}
	timeBasedStops = []gradientStop{
		{0, 0.6, 0.20},
		{0.5, 0.7, 0.15},
		{1, 0.8, 0.10},
	}
)

// Renderer draws synthetic preview frames. It is safe for concurrent use.
type Renderer struct {
	mu  sync.Mutex
	rng *rand.Rand

	// encode is swapped in tests to exercise the degraded paths
	encode func(img image.Image, quality int) (string, error)
}

func NewRenderer(seed uint64) *Renderer {
	return &Renderer{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		encode: EncodeJPEG,
	}
}

// Enhanced draws the full preview for time t. When encoding fails it degrades to
// TimeBased.
func (r *Renderer) Enhanced(t, duration float64) string {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(img, hue(t, duration), enhancedStops)
	r.noise(img, 15, 3, 1)
	drawPlayGlyph(img, 8, 6, 4, 204)
	drawOutlinedText(img, timecode.Format(t), Height-8, color.White, color.NRGBA{0, 0, 0, 204})

	uri, err := r.encode(img, Quality)
	if err != nil {
		slog.Debug("Thumbnail: enhanced render failed, degrading", "time", t, "error", err)
		return r.TimeBased(t, duration)
	}
	return uri
}

// TimeBased draws a simpler preview. It returns "" when encoding fails.
func (r *Renderer) TimeBased(t, duration float64) string {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(img, hue(t, duration), timeBasedStops)
	r.noise(img, 20, 2, 0)
	drawOutlinedText(img, timecode.Format(t), Height-8, color.White, color.NRGBA{0, 0, 0, 178})
	drawPlayGlyph(img, 6, 4, 3, 230)

	uri, err := r.encode(img, Quality)
	if err != nil {
		slog.Warn("Thumbnail: render failed", "time", t, "error", err)
		return ""
	}
	return uri
}

// Loading draws the flat frame shown while the media is not ready
func (r *Renderer) Loading() string {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0x33, 0x33, 0x33, 0xff}), image.Point{}, draw.Src)
	drawText(img, "Loading...", Height/2, color.RGBA{0x66, 0x66, 0x66, 0xff})

	uri, err := r.encode(img, LoadingQuality)
	if err != nil {
		slog.Warn("Thumbnail: loading frame failed", "error", err)
		return ""
	}
	return uri
}

func hue(t, duration float64) float64 {
	progress := 0.0
	if duration > 0 {
		progress = t / duration
	}
	return hueStart + progress*hueRange
}

func (r *Renderer) noise(img draw.Image, count int, spread, base float64) {
	b := img.Bounds()
	dot := image.NewUniform(color.NRGBA{255, 255, 255, 26})

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < count; i++ {
		x := r.rng.Float64() * float64(b.Dx())
		y := r.rng.Float64() * float64(b.Dy())
		size := r.rng.Float64()*spread + base
		rect := image.Rect(int(x), int(y), int(x+size), int(y+size))
		draw.Draw(img, rect, dot, image.Point{}, draw.Over)
	}
}

// fillGradient paints a diagonal gradient from the top-left to the bottom-right corner
func fillGradient(img *image.RGBA, h float64, stops []gradientStop) {
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		colors[i] = colorful.Hsl(h, s.sat, s.light)
	}

	b := img.Bounds()
	w, ht := float64(b.Dx()), float64(b.Dy())
	den := w*w + ht*ht
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := (float64(x)*w + float64(y)*ht) / den
			img.Set(x, y, colorAt(stops, colors, t))
		}
	}
}

func colorAt(stops []gradientStop, colors []colorful.Color, t float64) color.Color {
	if t <= stops[0].offset {
		return colors[0]
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].offset {
			span := stops[i].offset - stops[i-1].offset
			return colors[i-1].BlendRgb(colors[i], (t-stops[i-1].offset)/span).Clamped()
		}
	}
	return colors[len(colors)-1]
}

func drawPlayGlyph(img draw.Image, left, half, right float32, alpha uint8) {
	b := img.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(cx-left, cy-half)
	z.LineTo(cx-left, cy+half)
	z.LineTo(cx+right, cy)
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(color.NRGBA{255, 255, 255, alpha}), image.Point{})
}

func textOrigin(img draw.Image, label string) int {
	width := font.MeasureString(basicfont.Face7x13, label).Ceil()
	return (img.Bounds().Dx() - width) / 2
}

func drawText(img draw.Image, label string, baseline int, fill color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(textOrigin(img, label), baseline),
	}
	d.DrawString(label)
}

// drawOutlinedText centers label on baseline with a one pixel stroke around it
func drawOutlinedText(img draw.Image, label string, baseline int, fill, stroke color.Color) {
	x := textOrigin(img, label)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(stroke),
		Face: basicfont.Face7x13,
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(x+dx, baseline+dy)
			d.DrawString(label)
		}
	}
	d.Src = image.NewUniform(fill)
	d.Dot = fixed.P(x, baseline)
	d.DrawString(label)
}
