package convert

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// Outcome classifies what a handler did with one primitive
type Outcome int

const (
	Emitted Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Emitted:
		return "emitted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of converting one primitive. Bounds is the delta
// the caller folds into the footprint context; it is empty when the
// primitive does not contribute.
type Result struct {
	Kind    easyeda.Kind
	Outcome Outcome
	Items   []footprint.Item
	Bounds  footprint.BoundingBox
	Reason  string
	Err     error
}

func newResult(kind easyeda.Kind) Result {
	return Result{Kind: kind, Bounds: footprint.NewBoundingBox()}
}

func (r Result) emit(items ...footprint.Item) Result {
	r.Outcome = Emitted
	r.Items = items
	return r
}

func (r Result) skip(reason string) Result {
	r.Outcome = Skipped
	r.Reason = reason
	r.Items = nil
	r.Bounds = footprint.NewBoundingBox()
	return r
}

func (r Result) fail(err error) Result {
	r.Outcome = Failed
	r.Err = err
	r.Reason = err.Error()
	r.Items = nil
	r.Bounds = footprint.NewBoundingBox()
	return r
}

// Accumulator receives emitted footprint items. *footprint.Footprint
// satisfies it.
type Accumulator interface {
	Append(item footprint.Item)
}

// Context is the per-footprint state shared across primitives
type Context struct {
	Name            string
	AssemblyProcess easyeda.AssemblyProcess
	Bounds          footprint.BoundingBox
}

// NewContext creates a context with empty bounds
func NewContext(name string, ap easyeda.AssemblyProcess) *Context {
	return &Context{
		Name:            name,
		AssemblyProcess: ap,
		Bounds:          footprint.NewBoundingBox(),
	}
}

// Fold merges a result's bounds delta into the context and appends its
// items to acc. Not safe for concurrent use.
func (ctx *Context) Fold(r Result, acc Accumulator) {
	ctx.Bounds.ExpandBox(r.Bounds)
	for _, item := range r.Items {
		acc.Append(item)
	}
}

// itemSink collects items appended by collaborators such as the model resolver
type itemSink struct {
	items []footprint.Item
}

func (s *itemSink) Append(item footprint.Item) {
	s.items = append(s.items, item)
}
