// Package convert turns decoded EasyEDA primitives into KiCad footprint
// items: unit conversion, layer remapping, arc centre reconstruction and
// bounding box tracking.
//
// Every handler is a pure function of its primitive and the footprint
// context. It returns a Result carrying the emitted items and a bounds
// delta; folding those into the context is the caller's job.
package convert

import (
	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
)

// Converter dispatches primitives to their handlers
type Converter struct {
	cfg     *Config
	logger  *zap.Logger
	models  ModelResolver
	metrics *Metrics
}

// Option configures a Converter
type Option func(*Converter)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithModelResolver sets the collaborator used for SVGNODE model references
func WithModelResolver(r ModelResolver) Option {
	return func(c *Converter) { c.models = r }
}

// WithMetrics records every dispatched primitive
func WithMetrics(m *Metrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// New creates a converter. A nil cfg uses DefaultConfig.
func New(cfg *Config, opts ...Option) (*Converter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dispatch converts one primitive. It reads ctx but never modifies it.
func (c *Converter) Dispatch(ctx *Context, p easyeda.Primitive) Result {
	var res Result
	switch prim := p.(type) {
	case easyeda.Track:
		res = c.convertTrack(prim)
	case easyeda.Pad:
		res = c.convertPad(ctx, prim)
	case easyeda.Arc:
		res = c.convertArc(prim)
	case easyeda.Circle:
		res = c.convertCircle(prim)
	case easyeda.SolidRegion:
		res = c.convertSolidRegion(prim)
	case easyeda.SVGNode:
		res = c.convertSVGNode(ctx, prim)
	case easyeda.Via:
		res = c.convertVia(prim)
	case easyeda.Unsupported:
		res = c.convertUnsupported(prim)
	default:
		res = newResult(easyeda.KindUnsupported).skip("unknown primitive")
	}

	c.record(res)
	return res
}

func (c *Converter) record(res Result) {
	c.metrics.Observe(res)

	switch res.Outcome {
	case Failed:
		c.logger.Error("primitive dropped", zap.String("kind", string(res.Kind)), zap.Error(res.Err))
	case Skipped:
		c.logger.Debug("primitive skipped", zap.String("kind", string(res.Kind)), zap.String("reason", res.Reason))
	case Emitted:
		c.logger.Debug("primitive converted", zap.String("kind", string(res.Kind)), zap.Int("items", len(res.Items)))
	}
}
