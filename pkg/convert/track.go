package convert

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// convertTrack emits one line per consecutive pair of points. A trailing
// unpaired coordinate is ignored.
func (c *Converter) convertTrack(t easyeda.Track) Result {
	res := newResult(easyeda.KindTrack)

	width, err := ParseMil(t.Width)
	if err != nil {
		return res.fail(fmt.Errorf("track width: %w", err))
	}

	values, err := parseMils(t.Coordinates()...)
	if err != nil {
		return res.fail(fmt.Errorf("track points: %w", err))
	}

	points := make([]footprint.Position, len(values)/2)
	for i := range points {
		points[i] = footprint.Position{X: values[2*i], Y: values[2*i+1]}
	}
	if len(points) < 2 {
		return res.skip("track has fewer than two points")
	}

	layer := c.resolveLayer(t.Layer, easyeda.KindTrack, zap.ErrorLevel)

	items := make([]footprint.Item, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		start, end := points[i], points[i+1]
		res.Bounds.Expand(start)
		res.Bounds.Expand(end)
		items = append(items, footprint.Line{
			Start: start,
			End:   end,
			Width: width,
			Layer: layer,
		})
	}
	return res.emit(items...)
}
