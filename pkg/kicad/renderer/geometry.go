package renderer

import (
	"math"
	"sort"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// arcSegmentAngle is the maximum angle covered by one flattened arc segment
const arcSegmentAngle = math.Pi / 36

// ArcPoints flattens an arc into a polyline from Start to End
func ArcPoints(a footprint.Arc) []sexp.Position {
	r := a.Radius()
	sweep := a.Sweep()
	start := math.Atan2(a.Start.Y-a.Center.Y, a.Start.X-a.Center.X)

	n := int(math.Ceil(math.Abs(sweep) / arcSegmentAngle))
	if n < 2 {
		n = 2
	}
	points := make([]sexp.Position, 0, n+1)
	for i := 0; i <= n; i++ {
		angle := start + sweep*float64(i)/float64(n)
		points = append(points, sexp.Position{
			X: a.Center.X + r*math.Cos(angle),
			Y: a.Center.Y + r*math.Sin(angle),
		})
	}
	return points
}

// CirclePoints flattens a circle into a closed polygon
func CirclePoints(center sexp.Position, radius float64) []sexp.Position {
	n := int(2 * math.Pi / arcSegmentAngle)
	points := make([]sexp.Position, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = sexp.Position{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return points
}

// PadOutline returns the pad copper outline in footprint coordinates.
// Custom pads return one outline per primitive.
func PadOutline(p footprint.Pad) [][]sexp.Position {
	if p.Shape == footprint.ShapeCustom && len(p.Primitives) > 0 {
		outlines := make([][]sexp.Position, 0, len(p.Primitives))
		for _, prim := range p.Primitives {
			outline := make([]sexp.Position, len(prim.Points))
			for i, pt := range prim.Points {
				outline[i] = pt.Add(p.Position)
			}
			outlines = append(outlines, outline)
		}
		return outlines
	}

	hw, hh := p.Size.Width/2, p.Size.Height/2
	var local []sexp.Position
	switch p.Shape {
	case footprint.ShapeCircle:
		return [][]sexp.Position{CirclePoints(p.Position, math.Min(hw, hh))}
	case footprint.ShapeOval:
		local = stadium(hw, hh)
	default:
		local = []sexp.Position{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	}

	// KiCad pad rotation is counter-clockwise on screen, which is negative
	// in the Y-down frame.
	rad := -p.Rotation * math.Pi / 180
	outline := make([]sexp.Position, len(local))
	for i, pt := range local {
		x, y := rotate(pt.X, pt.Y, rad)
		outline[i] = sexp.Position{X: x + p.Position.X, Y: y + p.Position.Y}
	}
	return [][]sexp.Position{outline}
}

// stadium returns an oval pad outline centred on the origin
func stadium(hw, hh float64) []sexp.Position {
	if hw == hh {
		return CirclePoints(sexp.Position{}, hw)
	}

	r := math.Min(hw, hh)
	var c1, c2 sexp.Position
	var base float64
	if hw > hh {
		c1, c2 = sexp.Position{X: hw - r}, sexp.Position{X: -(hw - r)}
		base = -math.Pi / 2
	} else {
		c1, c2 = sexp.Position{Y: hh - r}, sexp.Position{Y: -(hh - r)}
		base = 0
	}

	const half = 18
	points := make([]sexp.Position, 0, 2*(half+1))
	for _, end := range []struct {
		center sexp.Position
		offset float64
	}{{c1, base}, {c2, base + math.Pi}} {
		for i := 0; i <= half; i++ {
			angle := end.offset + math.Pi*float64(i)/half
			points = append(points, sexp.Position{
				X: end.center.X + r*math.Cos(angle),
				Y: end.center.Y + r*math.Sin(angle),
			})
		}
	}
	return points
}

// itemLayer returns the layer a graphic item is drawn on
func itemLayer(item footprint.Item) (string, bool) {
	switch it := item.(type) {
	case footprint.Line:
		return it.Layer, true
	case footprint.Arc:
		return it.Layer, true
	case footprint.Circle:
		return it.Layer, true
	case footprint.Polygon:
		return it.Layer, true
	case footprint.Text:
		return it.Layer, true
	}
	return "", false
}

// Graphics returns the visible non-pad items sorted by DrawOrder
func Graphics(fp *footprint.Footprint, layers *LayerConfig) []footprint.Item {
	var items []footprint.Item
	for _, item := range fp.Items {
		layer, ok := itemLayer(item)
		if !ok || !layers.IsVisible(layer) {
			continue
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		li, _ := itemLayer(items[i])
		lj, _ := itemLayer(items[j])
		return layerRank(li) < layerRank(lj)
	})
	return items
}
