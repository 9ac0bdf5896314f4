package convert

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// padDrawingLayer marks circles EasyEDA draws over pads. They are not
// silkscreen and are dropped.
const padDrawingLayer = "100"

// convertCircle emits a circle. Circles never contribute to the bounds.
func (c *Converter) convertCircle(ci easyeda.Circle) Result {
	res := newResult(easyeda.KindCircle)

	if ci.Layer == padDrawingLayer {
		return res.skip("circle on pad drawing layer")
	}

	v, err := parseMils(ci.X, ci.Y, ci.Radius, ci.Width)
	if err != nil {
		return res.fail(fmt.Errorf("circle: %w", err))
	}

	layer := c.resolveLayer(ci.Layer, easyeda.KindCircle, zap.ErrorLevel)

	return res.emit(footprint.Circle{
		Center: footprint.Position{X: v[0], Y: v[1]},
		Radius: v[2],
		Width:  v[3],
		Layer:  layer,
	})
}
