package convert

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// collinearTolerance is relative to the squared extent of the three points
const collinearTolerance = 1e-12

// ReconstructCenter returns the centre of the circle through start, end and
// mid by intersecting two perpendicular bisectors:
//
//	sq1 = |mid|² − |start|²
//	sq2 = |end|² − |start|²
//	cx  = ((s.y−e.y)/(s.y−m.y)·sq1 − sq2) / (2(s.x−e.x) − 2(s.x−m.x)(s.y−e.y)/(s.y−m.y))
//	cy  = −(2(s.x−m.x)·cx + sq1) / (2(s.y−m.y))
//
// The closed form divides by s.y−m.y, so points sharing that coordinate are
// rejected even when they are not collinear.
func ReconstructCenter(start, end, mid footprint.Position) (footprint.Position, error) {
	if collinear(start, mid, end) {
		return footprint.Position{}, fmt.Errorf("%w: points are collinear", ErrDegenerateArc)
	}
	if start.Y == mid.Y {
		return footprint.Position{}, fmt.Errorf("%w: start and midpoint share y=%g", ErrDegenerateArc, start.Y)
	}

	sq1 := mid.X*mid.X + mid.Y*mid.Y - start.X*start.X - start.Y*start.Y
	sq2 := end.X*end.X + end.Y*end.Y - start.X*start.X - start.Y*start.Y

	ratio := (start.Y - end.Y) / (start.Y - mid.Y)
	den := 2*(start.X-end.X) - 2*(start.X-mid.X)*ratio
	if den == 0 {
		return footprint.Position{}, fmt.Errorf("%w: zero denominator", ErrDegenerateArc)
	}

	cx := (ratio*sq1 - sq2) / den
	cy := -(2*(start.X-mid.X)*cx + sq1) / (2 * (start.Y - mid.Y))

	if math.IsNaN(cx) || math.IsNaN(cy) || math.IsInf(cx, 0) || math.IsInf(cy, 0) {
		return footprint.Position{}, fmt.Errorf("%w: centre is not finite", ErrDegenerateArc)
	}
	return footprint.Position{X: cx, Y: cy}, nil
}

// collinear reports whether the homogeneous point matrix is singular
func collinear(a, b, c footprint.Position) bool {
	m := mat.NewDense(3, 3, []float64{
		a.X, a.Y, 1,
		b.X, b.Y, 1,
		c.X, c.Y, 1,
	})
	scale := math.Max(1, math.Max(a.Distance(b), math.Max(b.Distance(c), a.Distance(c))))
	return math.Abs(mat.Det(m)) <= collinearTolerance*scale*scale
}

// convertArc rebuilds an arc from its SVG path. Arcs never contribute to
// the bounds.
func (c *Converter) convertArc(a easyeda.Arc) Result {
	res := newResult(easyeda.KindArc)

	width, err := ParseMil(a.Width)
	if err != nil {
		return res.fail(fmt.Errorf("arc width: %w", err))
	}

	path, err := a.Path()
	if err != nil {
		c.logger.Warn("failed to parse footprint arc data", zap.Strings("fields", a.Candidates))
		return res.fail(err)
	}

	ap, err := easyeda.ParseArcPath(path)
	if err != nil {
		return res.fail(err)
	}

	v, err := parseMils(ap.Start.X, ap.Start.Y, ap.Radius.X, ap.Radius.Y, ap.End.X, ap.End.Y)
	if err != nil {
		return res.fail(fmt.Errorf("arc path: %w", err))
	}

	start := footprint.Position{X: v[0], Y: v[1]}
	end := footprint.Position{X: v[4], Y: v[5]}
	// the radius pair is an offset from the end point
	mid := footprint.Position{X: end.X + v[2], Y: end.Y + v[3]}

	center, err := ReconstructCenter(start, end, mid)
	if err != nil {
		return res.fail(err)
	}

	layer := c.resolveLayer(a.Layer, easyeda.KindArc, zap.WarnLevel)

	arc := footprint.Arc{
		Center: center,
		Start:  start,
		End:    end,
		Width:  width,
		Layer:  layer,
	}
	return res.emit(arc.Through(mid))
}
