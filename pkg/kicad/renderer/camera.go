package renderer

import (
	"math"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

const (
	minZoom = 0.1
	maxZoom = 1000.0

	// fitFill is the share of the viewport a fitted footprint occupies
	fitFill = 0.9
)

// Camera is a viewport onto footprint coordinates. World units are mm with
// Y growing downwards, matching .kicad_mod files.
type Camera struct {
	// Center position in world coordinates (mm)
	CenterX float64
	CenterY float64

	// Zoom level in pixels per mm
	Zoom float64

	ScreenWidth  int
	ScreenHeight int

	FlipView bool    // mirror around the rotation centre (view from the back)
	Rotation float64 // degrees, normalised to [0, 360)

	// Rotation center in world coordinates (mm)
	RotationCenterX float64
	RotationCenterY float64
}

// NewCamera creates a camera centred on the footprint origin
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates (mm) to screen coordinates (pixels)
func (c *Camera) WorldToScreen(pos sexp.Position) (float64, float64) {
	pos = c.applyViewTransform(pos)

	x := (pos.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return x, y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates (mm)
func (c *Camera) ScreenToWorld(screenX, screenY float64) sexp.Position {
	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX
	y := (screenY-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY
	return c.applyInverseViewTransform(sexp.Position{X: x, Y: y})
}

// Scale converts a world length (mm) to pixels
func (c *Camera) Scale(mm float64) float64 {
	return mm * c.Zoom
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms around a screen position, keeping the point under it fixed.
// factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom = math.Min(math.Max(c.Zoom*factor, minZoom), maxZoom)

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centres bbox and zooms so it fills most of the viewport
func (c *Camera) Fit(bbox sexp.BoundingBox) {
	width := bbox.Width()
	height := bbox.Height()
	if bbox.IsEmpty() || width <= 0 || height <= 0 {
		return
	}

	center := bbox.Center()
	c.CenterX, c.CenterY = center.X, center.Y
	c.RotationCenterX, c.RotationCenterY = center.X, center.Y

	zoomX := float64(c.ScreenWidth) * fitFill / width
	zoomY := float64(c.ScreenHeight) * fitFill / height
	c.Zoom = math.Min(math.Max(math.Min(zoomX, zoomY), minZoom), maxZoom)
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Flip toggles the mirrored view
func (c *Camera) Flip() {
	c.FlipView = !c.FlipView
}

// Rotate rotates the view by the given degrees
func (c *Camera) Rotate(degrees float64) {
	c.Rotation = math.Mod(c.Rotation+degrees, 360)
	if c.Rotation < 0 {
		c.Rotation += 360
	}
}

func (c *Camera) applyViewTransform(pos sexp.Position) sexp.Position {
	x := pos.X - c.RotationCenterX
	y := pos.Y - c.RotationCenterY

	if c.Rotation != 0 {
		x, y = rotate(x, y, c.Rotation*math.Pi/180.0)
	}
	if c.FlipView {
		x = -x
	}

	return sexp.Position{X: x + c.RotationCenterX, Y: y + c.RotationCenterY}
}

func (c *Camera) applyInverseViewTransform(pos sexp.Position) sexp.Position {
	x := pos.X - c.RotationCenterX
	y := pos.Y - c.RotationCenterY

	// inverse order: unflip, then unrotate
	if c.FlipView {
		x = -x
	}
	if c.Rotation != 0 {
		x, y = rotate(x, y, -c.Rotation*math.Pi/180.0)
	}

	return sexp.Position{X: x + c.RotationCenterX, Y: y + c.RotationCenterY}
}

// VisibleBounds returns the visible area in world coordinates
func (c *Camera) VisibleBounds() sexp.BoundingBox {
	bb := sexp.NewBoundingBox()
	w, h := float64(c.ScreenWidth), float64(c.ScreenHeight)
	for _, corner := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		bb.Expand(c.ScreenToWorld(corner[0], corner[1]))
	}
	return bb
}

func rotate(x, y, radians float64) (float64, float64) {
	sin, cos := math.Sincos(radians)
	return x*cos - y*sin, x*sin + y*cos
}
