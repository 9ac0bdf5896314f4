package convert

import (
	"fmt"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
)

// ModelResolver attaches the 3D model referenced by an SVGNODE. translationZ
// is in millimetres, rotation is the raw "x,y,z" string from the document.
type ModelResolver interface {
	ResolveModel(id string, ctx *Context, acc Accumulator, translationZ float64, rotation string) error
}

// convertSVGNode delegates to the configured model resolver
func (c *Converter) convertSVGNode(ctx *Context, n easyeda.SVGNode) Result {
	res := newResult(easyeda.KindSVGNode)

	ref, err := n.Model()
	if err != nil {
		return res.fail(err)
	}
	if c.models == nil {
		return res.skip("no model resolver configured")
	}

	z, err := ParseMil(ref.Z)
	if err != nil {
		return res.fail(fmt.Errorf("model %s z: %w", ref.UUID, err))
	}

	sink := &itemSink{}
	if err := c.models.ResolveModel(ref.UUID, ctx, sink, z, ref.Rotation); err != nil {
		return res.fail(fmt.Errorf("model %s: %w", ref.UUID, err))
	}
	if len(sink.items) == 0 {
		return res.skip("resolver attached no model")
	}
	return res.emit(sink.items...)
}
