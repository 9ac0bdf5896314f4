package convert

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// Report summarises one footprint conversion
type Report struct {
	Name            string
	AssemblyProcess easyeda.AssemblyProcess
	Bounds          footprint.BoundingBox // after origin translation
	Counts          map[easyeda.Kind]map[Outcome]int
	Failures        []Result
}

func newReport(name string, ap easyeda.AssemblyProcess) *Report {
	return &Report{
		Name:            name,
		AssemblyProcess: ap,
		Counts:          make(map[easyeda.Kind]map[Outcome]int),
	}
}

func (r *Report) add(res Result) {
	if r.Counts[res.Kind] == nil {
		r.Counts[res.Kind] = make(map[Outcome]int)
	}
	r.Counts[res.Kind][res.Outcome]++
	if res.Outcome == Failed {
		r.Failures = append(r.Failures, res)
	}
}

// Total returns the number of primitives with the given outcome
func (r *Report) Total(o Outcome) int {
	n := 0
	for _, byOutcome := range r.Counts {
		n += byOutcome[o]
	}
	return n
}

// Kinds returns the kinds seen, sorted
func (r *Report) Kinds() []easyeda.Kind {
	kinds := make([]easyeda.Kind, 0, len(r.Counts))
	for k := range r.Counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Convert builds a complete footprint from a document: every shape is
// dispatched, the result is moved so the document origin becomes (0, 0),
// and reference/value texts plus an optional courtyard are added.
func (c *Converter) Convert(doc *easyeda.Document) (*footprint.Footprint, *Report, error) {
	name := c.cfg.Name
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		name = "easyeda_footprint"
	}

	originX, err := ParseMil(doc.OriginX)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse origin x: %w", err)
	}
	originY, err := ParseMil(doc.OriginY)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse origin y: %w", err)
	}

	prims, decodeErrs := doc.Primitives()

	ap := c.cfg.AssemblyProcess
	if ap == "" {
		ap = easyeda.DetectAssemblyProcess(prims)
	}

	logger := c.logger.With(zap.String("footprint", name))
	logger.Info("converting footprint",
		zap.String("assembly_process", string(ap)),
		zap.Int("shapes", len(doc.Shapes)))

	ctx := NewContext(name, ap)
	fp := footprint.New(name)
	report := newReport(name, ap)

	next := 0
	for i, raw := range doc.Shapes {
		var res Result
		if err, ok := decodeErrs[i]; ok {
			res = newResult(easyeda.ShapeKind(raw)).fail(fmt.Errorf("shape %d: %w", i, err))
			c.record(res)
		} else {
			res = c.Dispatch(ctx, prims[next])
			next++
		}

		report.add(res)
		if c.cfg.Strict && res.Kind == easyeda.KindPad && res.Outcome == Failed {
			return nil, report, fmt.Errorf("%w: shape %d: %v", ErrPadFailed, i, res.Err)
		}
		ctx.Fold(res, fp)
	}

	offset := footprint.Position{X: -originX, Y: -originY}
	fp.Translate(offset)
	ctx.Bounds = ctx.Bounds.Translate(offset)

	bounds := ctx.Bounds
	if bounds.IsEmpty() {
		bounds = fp.GetBoundingBox()
	}
	if bounds.IsEmpty() {
		bounds.Expand(footprint.Position{})
	}
	report.Bounds = bounds

	c.decorate(fp, bounds)

	switch ap {
	case easyeda.THT:
		fp.Attribute = footprint.AttrThroughHole
	default:
		fp.Attribute = footprint.AttrSMD
	}
	fp.Description = "Converted from EasyEDA footprint " + name
	fp.Tags = "easyeda " + name

	logger.Info("footprint converted",
		zap.Int("emitted", report.Total(Emitted)),
		zap.Int("skipped", report.Total(Skipped)),
		zap.Int("failed", report.Total(Failed)))

	return fp, report, nil
}

// decorate adds reference and value texts around bounds and the courtyard
func (c *Converter) decorate(fp *footprint.Footprint, bounds footprint.BoundingBox) {
	center := bounds.Center()
	fp.Append(footprint.Text{
		Type:     footprint.TextReference,
		Text:     "REF**",
		Position: footprint.Position{X: center.X, Y: bounds.Min.Y - c.cfg.TextOffset},
		Layer:    "F.SilkS",
	})
	fp.Append(footprint.Text{
		Type:     footprint.TextValue,
		Text:     fp.Name,
		Position: footprint.Position{X: center.X, Y: bounds.Max.Y + c.cfg.TextOffset},
		Layer:    "F.Fab",
	})

	if !c.cfg.Courtyard {
		return
	}
	for _, l := range Courtyard(bounds.Inflate(c.cfg.CourtyardMargin), c.cfg.CourtyardWidth) {
		fp.Append(l)
	}
}

// Courtyard returns the four F.CrtYd lines of the rectangle bb
func Courtyard(bb footprint.BoundingBox, width float64) []footprint.Line {
	corners := []footprint.Position{
		{X: bb.Min.X, Y: bb.Min.Y},
		{X: bb.Max.X, Y: bb.Min.Y},
		{X: bb.Max.X, Y: bb.Max.Y},
		{X: bb.Min.X, Y: bb.Max.Y},
	}
	lines := make([]footprint.Line, len(corners))
	for i := range corners {
		lines[i] = footprint.Line{
			Start: corners[i],
			End:   corners[(i+1)%len(corners)],
			Width: width,
			Layer: "F.CrtYd",
		}
	}
	return lines
}
