package footprint

import "math"

// Attribute is the footprint's (attr ...) value
type Attribute string

const (
	AttrSMD         Attribute = "smd"
	AttrThroughHole Attribute = "through_hole"
)

// Footprint accumulates items in insertion order
type Footprint struct {
	Name        string
	Description string
	Tags        string
	Layer       string // F.Cu or B.Cu
	Attribute   Attribute
	Items       []Item
}

// New creates an empty front-side footprint
func New(name string) *Footprint {
	return &Footprint{Name: name, Layer: "F.Cu"}
}

// Append adds an item to the footprint
func (fp *Footprint) Append(item Item) {
	fp.Items = append(fp.Items, item)
}

// Translate moves every item by offset
func (fp *Footprint) Translate(offset Position) {
	for i, item := range fp.Items {
		fp.Items[i] = item.translate(offset)
	}
}

// Pads returns all pads in insertion order
func (fp *Footprint) Pads() []Pad {
	var pads []Pad
	for _, item := range fp.Items {
		if pad, ok := item.(Pad); ok {
			pads = append(pads, pad)
		}
	}
	return pads
}

// Models returns all attached 3D models
func (fp *Footprint) Models() []Model {
	var models []Model
	for _, item := range fp.Items {
		if m, ok := item.(Model); ok {
			models = append(models, m)
		}
	}
	return models
}

// CountByKind returns the number of items per KiCad node name
func (fp *Footprint) CountByKind() map[string]int {
	counts := make(map[string]int)
	for _, item := range fp.Items {
		counts[item.Kind()]++
	}
	return counts
}

// GetBoundingBox calculates the geometric extent of the footprint.
// Pads are expanded by half their size, circles by their radius and arcs
// by start, end and the arc mid point. Texts and models are ignored.
func (fp *Footprint) GetBoundingBox() BoundingBox {
	bbox := NewBoundingBox()

	for _, item := range fp.Items {
		switch it := item.(type) {
		case Line:
			bbox.Expand(it.Start)
			bbox.Expand(it.End)
		case Arc:
			bbox.Expand(it.Start)
			bbox.Expand(it.Mid())
			bbox.Expand(it.End)
		case Circle:
			bbox.Expand(Position{X: it.Center.X - it.Radius, Y: it.Center.Y - it.Radius})
			bbox.Expand(Position{X: it.Center.X + it.Radius, Y: it.Center.Y + it.Radius})
		case Polygon:
			for _, pt := range it.Points {
				bbox.Expand(pt)
			}
		case Pad:
			halfWidth := it.Size.Width / 2.0
			halfHeight := it.Size.Height / 2.0
			bbox.Expand(Position{X: it.Position.X - halfWidth, Y: it.Position.Y - halfHeight})
			bbox.Expand(Position{X: it.Position.X + halfWidth, Y: it.Position.Y + halfHeight})
		}
	}

	return bbox
}

// Radius returns the distance from the centre to the start point
func (a Arc) Radius() float64 {
	return a.Center.Distance(a.Start)
}

// Sweep returns the arc's signed angular extent in radians. It is in
// (0, 2π] and negative when Reverse is set.
func (a Arc) Sweep() float64 {
	sweep := a.angleTo(a.End)
	if a.Reverse {
		return sweep - 2*math.Pi
	}
	return sweep
}

// Through sets the arc direction so that it passes through p
func (a Arc) Through(p Position) Arc {
	a.Reverse = a.angleTo(p) > a.angleTo(a.End)
	return a
}

// angleTo returns the positive angle from Start to p around Center, in (0, 2π]
func (a Arc) angleTo(p Position) float64 {
	s, q := a.Start.Sub(a.Center), p.Sub(a.Center)
	angle := math.Atan2(q.Y, q.X) - math.Atan2(s.Y, s.X)
	for angle <= 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Mid returns the point halfway along the arc, as written in (mid x y)
func (a Arc) Mid() Position {
	r := a.Radius()
	a0 := math.Atan2(a.Start.Y-a.Center.Y, a.Start.X-a.Center.X)
	angle := a0 + a.Sweep()/2
	return Position{
		X: a.Center.X + r*math.Cos(angle),
		Y: a.Center.Y + r*math.Sin(angle),
	}
}

// circumcenter returns the centre of the circle through a, b and c.
// ok is false for collinear points.
func circumcenter(a, b, c Position) (Position, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return Position{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Position{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}
