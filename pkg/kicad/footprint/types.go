// Package footprint models a KiCad footprint (.kicad_mod) as a flat list of
// graphic items and pads, and reads and writes the KiCad 6 file format.
package footprint

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// Shared types (aliases to sexp package)
type Position = sexp.Position
type Size = sexp.Size
type BoundingBox = sexp.BoundingBox

var NewBoundingBox = sexp.NewBoundingBox

// Item is one primitive owned by a Footprint. The set of items is closed.
type Item interface {
	// Kind returns the KiCad node name the item is written as
	Kind() string
	translate(offset Position) Item
}

// Line is a straight graphic segment (fp_line)
type Line struct {
	Start Position
	End   Position
	Width float64
	Layer string
}

// Arc is a circular arc (fp_arc) from Start to End around Center. It runs
// in the positive-angle direction of KiCad's Y-down frame unless Reverse is
// set.
type Arc struct {
	Center  Position
	Start   Position
	End     Position
	Reverse bool
	Width   float64
	Layer   string
}

// Circle is an unfilled circle (fp_circle)
type Circle struct {
	Center Position
	Radius float64
	Width  float64
	Layer  string
}

// Polygon is a closed outline (fp_poly, or gr_poly inside a custom pad)
type Polygon struct {
	Points []Position
	Width  float64
	Layer  string
	Filled bool
}

// PadType is the KiCad pad attribute
type PadType string

const (
	PadSMD         PadType = "smd"
	PadThroughHole PadType = "thru_hole"
)

// PadShape is the KiCad pad shape keyword
type PadShape string

const (
	ShapeOval   PadShape = "oval"
	ShapeRect   PadShape = "rect"
	ShapeCircle PadShape = "circle"
	ShapeCustom PadShape = "custom"
)

// Layer sets used by pads
var (
	LayersSMD = []string{"F.Cu", "F.Paste", "F.Mask"}
	LayersTHT = []string{"*.Cu", "*.Mask"}
)

// Pad is a footprint pad. Primitives are only used by custom pads and are
// relative to Position.
type Pad struct {
	Number     string
	Type       PadType
	Shape      PadShape
	Position   Position
	Size       Size
	Rotation   float64 // degrees
	Drill      float64 // diameter in mm; ignored for smd pads
	Layers     []string
	Primitives []Polygon
}

// TextKind selects the fp_text flavour
type TextKind string

const (
	TextReference TextKind = "reference"
	TextValue     TextKind = "value"
	TextUser      TextKind = "user"
)

// Text is an fp_text field
type Text struct {
	Type      TextKind
	Text      string
	Position  Position
	Layer     string
	Size      float64 // font height and width in mm
	Thickness float64
}

// Vec3 is a 3D vector used by model placement
type Vec3 struct {
	X, Y, Z float64
}

// Model attaches a 3D model file to the footprint
type Model struct {
	Path     string
	Offset   Vec3 // mm
	Scale    Vec3
	Rotation Vec3 // degrees
}

func (Line) Kind() string    { return "fp_line" }
func (Arc) Kind() string     { return "fp_arc" }
func (Circle) Kind() string  { return "fp_circle" }
func (Polygon) Kind() string { return "fp_poly" }
func (Pad) Kind() string     { return "pad" }
func (Text) Kind() string    { return "fp_text" }
func (Model) Kind() string   { return "model" }

func (l Line) translate(o Position) Item {
	l.Start, l.End = l.Start.Add(o), l.End.Add(o)
	return l
}

func (a Arc) translate(o Position) Item {
	a.Center, a.Start, a.End = a.Center.Add(o), a.Start.Add(o), a.End.Add(o)
	return a
}

func (c Circle) translate(o Position) Item {
	c.Center = c.Center.Add(o)
	return c
}

func (p Polygon) translate(o Position) Item {
	pts := make([]Position, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Add(o)
	}
	p.Points = pts
	return p
}

func (p Pad) translate(o Position) Item {
	p.Position = p.Position.Add(o)
	return p
}

func (t Text) translate(o Position) Item {
	t.Position = t.Position.Add(o)
	return t
}

// Models are placed relative to the footprint anchor and do not move.
func (m Model) translate(Position) Item { return m }
