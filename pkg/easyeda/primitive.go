// Package easyeda decodes EasyEDA footprint documents and their "~"-delimited
// shape strings into typed primitives.
//
// Numeric fields are kept as the raw strings found in the document; unit
// conversion and coercion happen in the converter.
package easyeda

import (
	"strconv"
	"strings"
)

// Kind identifies the primitive type by its EasyEDA tag
type Kind string

const (
	KindTrack       Kind = "TRACK"
	KindPad         Kind = "PAD"
	KindArc         Kind = "ARC"
	KindCircle      Kind = "CIRCLE"
	KindSolidRegion Kind = "SOLIDREGION"
	KindSVGNode     Kind = "SVGNODE"
	KindVia         Kind = "VIA"
	KindUnsupported Kind = "UNSUPPORTED"
)

// Kinds lists every supported tag in dispatch order
var Kinds = []Kind{KindTrack, KindPad, KindArc, KindCircle, KindSolidRegion, KindSVGNode, KindVia}

// Primitive is one decoded shape. The set of implementations is closed.
type Primitive interface {
	Kind() Kind
	isPrimitive()
}

// Track is a polyline: TRACK~width~layer~points
type Track struct {
	Width  string // mil
	Layer  string
	Points string // space separated x y pairs, mil
}

// Coordinates splits the point list into its raw values
func (t Track) Coordinates() []string {
	return strings.Fields(t.Points)
}

// Pad is PAD~shape~x~y~width~height~layer~number~holeRadius~points~rotation.
// The trailing three fields are optional and empty when absent.
type Pad struct {
	Shape      string
	X          string
	Y          string
	Width      string
	Height     string
	Layer      string
	Number     string
	HoleRadius string
	Points     string
	Rotation   string
}

// HasHole reports whether the pad declares a non-zero hole radius
func (p Pad) HasHole() bool {
	v, err := strconv.ParseFloat(p.HoleRadius, 64)
	return err == nil && v != 0
}

// Arc is ARC~width~layer~path. Depending on whether the net field was empty
// the path sits in one of two positions, so both candidates are kept.
type Arc struct {
	Width      string
	Layer      string
	Candidates []string
}

// Path returns the first candidate that is an SVG path starting with a
// move-to command.
func (a Arc) Path() (string, error) {
	for _, c := range a.Candidates {
		if strings.HasPrefix(c, "M") {
			return c, nil
		}
	}
	return "", ErrNoArcPath
}

// Circle is CIRCLE~cx~cy~radius~width~layer
type Circle struct {
	X      string
	Y      string
	Radius string
	Width  string
	Layer  string
}

// SolidRegion is a filled copper or silkscreen region. It is not converted.
type SolidRegion struct {
	Fields []string
}

// SVGNode carries a JSON blob describing an attached 3D model
type SVGNode struct {
	JSON string
}

// Via is a plated via. It is not converted.
type Via struct {
	Fields []string
}

// Unsupported is any shape whose tag is not handled
type Unsupported struct {
	Tag    string
	Fields []string
}

func (Track) Kind() Kind       { return KindTrack }
func (Pad) Kind() Kind         { return KindPad }
func (Arc) Kind() Kind         { return KindArc }
func (Circle) Kind() Kind      { return KindCircle }
func (SolidRegion) Kind() Kind { return KindSolidRegion }
func (SVGNode) Kind() Kind     { return KindSVGNode }
func (Via) Kind() Kind         { return KindVia }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (Track) isPrimitive()       {}
func (Pad) isPrimitive()         {}
func (Arc) isPrimitive()         {}
func (Circle) isPrimitive()      {}
func (SolidRegion) isPrimitive() {}
func (SVGNode) isPrimitive()     {}
func (Via) isPrimitive()         {}
func (Unsupported) isPrimitive() {}

// AssemblyProcess selects the pad conversion rules for a footprint
type AssemblyProcess string

const (
	SMT AssemblyProcess = "SMT"
	THT AssemblyProcess = "THT"
)

// ParseAssemblyProcess accepts smt/tht in any case
func ParseAssemblyProcess(s string) (AssemblyProcess, error) {
	switch ap := AssemblyProcess(strings.ToUpper(strings.TrimSpace(s))); ap {
	case SMT, THT:
		return ap, nil
	}
	return "", &UnknownAssemblyError{Value: s}
}

// DetectAssemblyProcess returns THT when any pad has a drilled hole,
// otherwise SMT.
func DetectAssemblyProcess(prims []Primitive) AssemblyProcess {
	for _, p := range prims {
		if pad, ok := p.(Pad); ok && pad.HasHole() {
			return THT
		}
	}
	return SMT
}
