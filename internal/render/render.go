// Package render rasterizes a computed layout to a PNG frame. It is used
// by the render command to produce timeline stills without a terminal.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/sync/errgroup"

	"github.com/framecut/framecut/internal/core/layout"
	"github.com/framecut/framecut/internal/core/selection"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
)

const (
	// DefaultRulerHeight is the pixel height of the timecode strip above
	// the first track row.
	DefaultRulerHeight = 24

	fontSize = 11.0

	// minLabelSpacing is the smallest pixel gap between two ruler labels
	// before the tick step widens.
	minLabelSpacing = 72.0
)

// Palette maps layer types to their fill colors.
type Palette map[timeline.LayerType]color.RGBA

// DefaultPalette returns the stock lane colors.
func DefaultPalette() Palette {
	return Palette{
		timeline.LayerMedia:       {R: 0x3b, G: 0x6e, B: 0xa5, A: 0xff},
		timeline.LayerAudio:       {R: 0x3f, G: 0x8f, B: 0x5a, A: 0xff},
		timeline.LayerEffects:     {R: 0x7e, G: 0x57, B: 0xc2, A: 0xff},
		timeline.LayerTransitions: {R: 0xc7, G: 0x7b, B: 0x30, A: 0xff},
		timeline.LayerText:        {R: 0xc9, G: 0xb4, B: 0x58, A: 0xff},
		timeline.LayerKeyframes:   {R: 0xb5, G: 0x4a, B: 0x4a, A: 0xff},
	}
}

// Options configures a Renderer.
type Options struct {
	FPS         int
	RulerHeight int
	Palette     Palette
	Selected    selection.Set
}

// Renderer turns layouts into images. Safe for reuse across frames; the
// font face is parsed once at construction.
type Renderer struct {
	opts Options
	face font.Face
}

// New builds a Renderer, filling zero-value options with defaults.
func New(opts Options) (*Renderer, error) {
	if opts.FPS <= 0 {
		opts.FPS = 24
	}
	if opts.RulerHeight <= 0 {
		opts.RulerHeight = DefaultRulerHeight
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Renderer{opts: opts, face: face}, nil
}

// Image rasterizes the layout for the given viewport. Rows render in
// parallel to their own buffers and composite in track order; overscan
// rows are skipped since they sit outside the viewport.
func (r *Renderer) Image(ctx context.Context, l layout.Layout, vp layout.Viewport) (image.Image, error) {
	width := int(vp.Width)
	height := int(vp.Height) + r.opts.RulerHeight
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("viewport %dx%d too small", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.RGBA{R: 0x14, G: 0x15, B: 0x18, A: 0xff})
	dc.Clear()
	dc.SetFontFace(r.face)

	r.drawRuler(dc, vp, width)

	type rendered struct {
		img image.Image
		y   int
	}
	results := make([]rendered, len(l.Rows))
	g, ctx := errgroup.WithContext(ctx)
	for i, row := range l.Rows {
		if row.Overscan || row.Height < 1 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = rendered{
				img: r.renderRow(row, width),
				y:   int(row.Y) + r.opts.RulerHeight,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if res.img == nil {
			continue
		}
		dc.DrawImage(res.img, 0, res.y)
	}
	return dc.Image(), nil
}

// WritePNG renders the layout and writes it to path.
func (r *Renderer) WritePNG(ctx context.Context, l layout.Layout, vp layout.Viewport, path string) error {
	img, err := r.Image(ctx, l, vp)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// drawRuler paints the timecode strip: tick marks at a step wide enough
// to keep labels from colliding, labeled in MM:SS:FF.
func (r *Renderer) drawRuler(dc *gg.Context, vp layout.Viewport, width int) {
	h := float64(r.opts.RulerHeight)
	dc.SetColor(color.RGBA{R: 0x1e, G: 0x20, B: 0x26, A: 0xff})
	dc.DrawRectangle(0, 0, float64(width), h)
	dc.Fill()

	step := tickStep(vp.Mapper.PixelsPerFrame, r.opts.FPS)
	first, last := vp.Mapper.VisibleRange(vp.Width)
	start := (first / step) * step
	if start < first {
		start += step
	}

	for f := start; f <= last; f += step {
		x := vp.Mapper.FrameToPixel(f)
		dc.SetColor(color.RGBA{R: 0x4a, G: 0x4e, B: 0x58, A: 0xff})
		dc.DrawLine(x, h-8, x, h)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetColor(color.RGBA{R: 0xb8, G: 0xbc, B: 0xc6, A: 0xff})
		dc.DrawString(timecode.FormatFrames(f, r.opts.FPS), x+3, h-9)
	}
}

// tickStep picks the smallest frame step from a widening ladder whose
// pixel spacing clears minLabelSpacing. The ladder is built on the frame
// rate so labels land on frame, second, and minute boundaries.
func tickStep(pixelsPerFrame float64, fps int) timeline.Frame {
	sec := timeline.Frame(fps)
	ladder := []timeline.Frame{
		1, 2, 5, 10,
		sec, 2 * sec, 5 * sec, 10 * sec, 30 * sec,
		60 * sec, 5 * 60 * sec, 10 * 60 * sec,
	}
	for _, step := range ladder {
		if float64(step)*pixelsPerFrame >= minLabelSpacing {
			return step
		}
	}
	return ladder[len(ladder)-1]
}

// renderRow rasterizes one track row into its own buffer. Coordinates
// inside the buffer are row-local; the caller composites at row.Y.
func (r *Renderer) renderRow(row layout.Row, width int) image.Image {
	h := int(row.Height)
	dc := gg.NewContext(width, h)
	dc.SetFontFace(r.face)

	dc.SetColor(color.RGBA{R: 0x19, G: 0x1b, B: 0x20, A: 0xff})
	dc.Clear()

	// Bottom separator between lanes.
	dc.SetColor(color.RGBA{R: 0x26, G: 0x29, B: 0x31, A: 0xff})
	dc.DrawLine(0, float64(h)-0.5, float64(width), float64(h)-0.5)
	dc.SetLineWidth(1)
	dc.Stroke()

	laneColor, ok := r.opts.Palette[row.Track.Type]
	if !ok {
		laneColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	}

	for _, sb := range row.Shots {
		r.drawShot(dc, row, sb, laneColor)
	}
	return dc.Image()
}

func (r *Renderer) drawShot(dc *gg.Context, row layout.Row, sb layout.ShotBox, laneColor color.RGBA) {
	y := sb.Rect.Y - row.Y
	fill := laneColor
	fill.A = 0xb0
	dc.SetColor(fill)
	dc.DrawRectangle(sb.Rect.X, y, sb.Rect.W, sb.Rect.H)
	dc.Fill()

	for _, lb := range sb.Layers {
		slotColor, ok := r.opts.Palette[lb.Type]
		if !ok {
			slotColor = laneColor
		}
		dc.SetColor(slotColor)
		dc.DrawRectangle(lb.Rect.X, lb.Rect.Y-row.Y, lb.Rect.W, lb.Rect.H-1)
		dc.Fill()
	}

	border := color.RGBA{R: 0x0c, G: 0x0d, B: 0x0f, A: 0xff}
	lineWidth := 1.0
	if r.opts.Selected.Contains(sb.ShotID) {
		border = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
		lineWidth = 2
	}
	dc.SetColor(border)
	dc.SetLineWidth(lineWidth)
	dc.DrawRectangle(sb.Rect.X, y, sb.Rect.W, sb.Rect.H)
	dc.Stroke()

	if sb.Rect.W >= 40 {
		dc.SetColor(color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff})
		label := sb.ShotID
		if w, _ := dc.MeasureString(label); w > sb.Rect.W-8 {
			for len(label) > 1 {
				label = label[:len(label)-1]
				if w, _ := dc.MeasureString(label + "…"); w <= sb.Rect.W-8 {
					break
				}
			}
			label += "…"
		}
		dc.DrawString(label, sb.Rect.X+4, y+fontSize+2)
	}
}
