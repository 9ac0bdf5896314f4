package renderer

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

const (
	minStrokePx   = 1.0
	minTextPx     = 6.0
	maxTextPx     = 64.0
	originCrossPx = 12.0
)

// Renderer draws a footprint with Gio operations
type Renderer struct {
	Layers     *LayerConfig
	Palette    Palette
	ShowOrigin bool

	shaper *text.Shaper
}

// NewRenderer creates a renderer using the palette of theme with every
// layer visible
func NewRenderer(theme ColorTheme) *Renderer {
	return &Renderer{
		Layers:     NewLayerConfig(),
		Palette:    PaletteFor(theme),
		ShowOrigin: true,
		shaper:     text.NewShaper(text.WithCollection(gofont.Collection())),
	}
}

// Render draws fp into gtx. Graphics go first in DrawOrder, pads on top.
func (r *Renderer) Render(gtx layout.Context, camera *Camera, fp *footprint.Footprint) {
	paint.Fill(gtx.Ops, r.Palette.Background)
	if fp == nil {
		return
	}

	for _, item := range Graphics(fp, r.Layers) {
		switch it := item.(type) {
		case footprint.Line:
			r.strokePolyline(gtx, camera, []sexp.Position{it.Start, it.End}, it.Width, r.Palette.Layer(it.Layer), false)
		case footprint.Arc:
			r.strokePolyline(gtx, camera, ArcPoints(it), it.Width, r.Palette.Layer(it.Layer), false)
		case footprint.Circle:
			r.strokePolyline(gtx, camera, CirclePoints(it.Center, it.Radius), it.Width, r.Palette.Layer(it.Layer), true)
		case footprint.Polygon:
			c := r.Palette.Layer(it.Layer)
			if it.Filled {
				fillPolygon(gtx, camera, it.Points, c)
			}
			r.strokePolyline(gtx, camera, it.Points, it.Width, c, true)
		case footprint.Text:
			r.drawText(gtx, camera, it)
		}
	}

	for _, pad := range fp.Pads() {
		if !r.Layers.AnyVisible(pad.Layers) {
			continue
		}
		for _, outline := range PadOutline(pad) {
			fillPolygon(gtx, camera, outline, r.Palette.Pad)
		}
		if pad.Type == footprint.PadThroughHole && pad.Drill > 0 {
			fillPolygon(gtx, camera, CirclePoints(pad.Position, pad.Drill/2), r.Palette.Drill)
		}
	}

	if r.ShowOrigin {
		r.drawOrigin(gtx, camera)
	}
}

func (r *Renderer) strokePolyline(gtx layout.Context, camera *Camera, points []sexp.Position, width float64, c color.NRGBA, closed bool) {
	if len(points) < 2 {
		return
	}
	strokeWidth := camera.Scale(width)
	if strokeWidth < minStrokePx {
		strokeWidth = minStrokePx
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(screenPoint(camera, points[0]))
	for _, p := range points[1:] {
		path.LineTo(screenPoint(camera, p))
	}
	if closed {
		path.Close()
	}

	paint.FillShape(gtx.Ops, c, clip.Stroke{Path: path.End(), Width: float32(strokeWidth)}.Op())
}

func fillPolygon(gtx layout.Context, camera *Camera, points []sexp.Position, c color.NRGBA) {
	if len(points) < 3 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(screenPoint(camera, points[0]))
	for _, p := range points[1:] {
		path.LineTo(screenPoint(camera, p))
	}
	path.Close()

	paint.FillShape(gtx.Ops, c, clip.Outline{Path: path.End()}.Op())
}

func (r *Renderer) drawText(gtx layout.Context, camera *Camera, t footprint.Text) {
	size := camera.Scale(t.Size)
	if size < minTextPx {
		return
	}
	if size > maxTextPx {
		size = maxTextPx
	}

	x, y := camera.WorldToScreen(t.Position)

	// Centre the label on its anchor
	gtx.Constraints = layout.Exact(image.Pt(int(size*float64(len(t.Text))), int(size*1.5)))
	w, h := float32(gtx.Constraints.Max.X), float32(gtx.Constraints.Max.Y)
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x)-w/2, float32(y)-h/2))).Push(gtx.Ops)
	defer stack.Pop()

	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: r.Palette.Layer(t.Layer)}.Add(gtx.Ops)
	material := m.Stop()

	label := widget.Label{Alignment: text.Middle, MaxLines: 1}
	label.Layout(gtx, r.shaper, font.Font{}, unit.Sp(size), t.Text, material)
}

func (r *Renderer) drawOrigin(gtx layout.Context, camera *Camera) {
	x, y := camera.WorldToScreen(sexp.Position{})
	for _, seg := range [][4]float64{
		{x - originCrossPx, y, x + originCrossPx, y},
		{x, y - originCrossPx, x, y + originCrossPx},
	} {
		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(f32.Pt(float32(seg[0]), float32(seg[1])))
		path.LineTo(f32.Pt(float32(seg[2]), float32(seg[3])))
		paint.FillShape(gtx.Ops, r.Palette.Origin, clip.Stroke{Path: path.End(), Width: minStrokePx}.Op())
	}
}

func screenPoint(camera *Camera, p sexp.Position) f32.Point {
	x, y := camera.WorldToScreen(p)
	return f32.Pt(float32(x), float32(y))
}
