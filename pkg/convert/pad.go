package convert

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// SMDDrillPlaceholder is written as the drill of surface-mount pads
const SMDDrillPlaceholder = 1

// padShapes maps EasyEDA pad shapes to KiCad pad shapes
var padShapes = map[string]footprint.PadShape{
	"OVAL":    footprint.ShapeOval,
	"RECT":    footprint.ShapeRect,
	"ELLIPSE": footprint.ShapeCircle,
	"POLYGON": footprint.ShapeCustom,
}

// convertPad dispatches on the footprint's assembly process. Only the pad
// centre contributes to the bounds.
func (c *Converter) convertPad(ctx *Context, p easyeda.Pad) Result {
	switch ctx.AssemblyProcess {
	case easyeda.SMT:
		return c.convertSMTPad(p)
	case easyeda.THT:
		return c.convertTHTPad(p)
	default:
		c.logger.Warn("unknown assembly process", zap.String("assembly_process", string(ctx.AssemblyProcess)))
		return newResult(easyeda.KindPad).skip(fmt.Sprintf("unknown assembly process %q", ctx.AssemblyProcess))
	}
}

func (c *Converter) convertSMTPad(p easyeda.Pad) Result {
	res := newResult(easyeda.KindPad)

	v, err := parseMils(p.X, p.Y, p.Width, p.Height)
	if err != nil {
		return res.fail(fmt.Errorf("pad %s: %w", p.Number, err))
	}
	at := footprint.Position{X: v[0], Y: v[1]}

	shape, ok := padShapes[p.Shape]
	if !ok {
		c.logger.Error("no pad shape correspondence, using oval",
			zap.String("pad", p.Number), zap.String("shape", p.Shape))
		shape = footprint.ShapeOval
	}

	pad := footprint.Pad{
		Number:   p.Number,
		Type:     footprint.PadSMD,
		Shape:    shape,
		Position: at,
		Size:     footprint.Size{Width: v[2], Height: v[3]},
		Drill:    SMDDrillPlaceholder,
		Layers:   append([]string(nil), footprint.LayersSMD...),
	}

	switch shape {
	case footprint.ShapeOval, footprint.ShapeRect:
		rotation, err := ParseNumber(p.Rotation)
		if err != nil {
			return res.fail(fmt.Errorf("pad %s rotation: %w", p.Number, err))
		}
		pad.Rotation = rotation
	case footprint.ShapeCustom:
		outline, err := customOutline(p.Points, at)
		if err != nil {
			return res.fail(fmt.Errorf("pad %s outline: %w", p.Number, err))
		}
		pad.Primitives = []footprint.Polygon{{Points: outline, Filled: true}}
	}

	res.Bounds.Expand(at)
	return res.emit(pad)
}

// customOutline converts a polygon's absolute points to positions relative
// to the pad origin.
func customOutline(raw string, at footprint.Position) ([]footprint.Position, error) {
	values, err := parseMils(strings.Fields(raw)...)
	if err != nil {
		return nil, err
	}
	origin := [2]float64{at.X, at.Y}
	for i := range values {
		values[i] -= origin[i%2]
	}

	points := make([]footprint.Position, len(values)/2)
	for i := range points {
		points[i] = footprint.Position{X: values[2*i], Y: values[2*i+1]}
	}
	return points, nil
}

// convertTHTPad has no shape fallback and always writes rotation 0
func (c *Converter) convertTHTPad(p easyeda.Pad) Result {
	res := newResult(easyeda.KindPad)

	v, err := parseMils(p.X, p.Y, p.Width, p.Height, p.HoleRadius)
	if err != nil {
		return res.fail(fmt.Errorf("pad %s: %w", p.Number, err))
	}

	shape, ok := padShapes[p.Shape]
	if !ok {
		return res.fail(fmt.Errorf("pad %s: %w %q", p.Number, ErrUnknownPadShape, p.Shape))
	}

	at := footprint.Position{X: v[0], Y: v[1]}
	res.Bounds.Expand(at)
	return res.emit(footprint.Pad{
		Number:   p.Number,
		Type:     footprint.PadThroughHole,
		Shape:    shape,
		Position: at,
		Size:     footprint.Size{Width: v[2], Height: v[3]},
		Drill:    2 * v[4],
		Layers:   append([]string(nil), footprint.LayersTHT...),
	})
}
