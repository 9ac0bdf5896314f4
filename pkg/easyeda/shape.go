package easyeda

import (
	"fmt"
	"strings"
)

// FieldSeparator delimits fields in a shape string
const FieldSeparator = "~"

// SplitShape splits a shape string into its tag and fields. Empty fields
// are dropped, which is why field positions shift when optional values such
// as the net name are missing.
func SplitShape(raw string) (string, []string) {
	var fields []string
	for _, f := range strings.Split(strings.TrimSpace(raw), FieldSeparator) {
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// ShapeKind returns the kind a shape string would decode to
func ShapeKind(raw string) Kind {
	tag, _ := SplitShape(raw)
	return kindOf(tag)
}

func kindOf(tag string) Kind {
	for _, k := range Kinds {
		if string(k) == tag {
			return k
		}
	}
	return KindUnsupported
}

// minFields is the number of fields each kind needs after the tag
var minFields = map[Kind]int{
	KindTrack:   3,
	KindPad:     7,
	KindArc:     3,
	KindCircle:  5,
	KindSVGNode: 1,
}

// DecodeShape turns one shape string into a typed primitive
func DecodeShape(raw string) (Primitive, error) {
	tag, fields := SplitShape(raw)
	if tag == "" {
		return nil, ErrEmptyShape
	}

	kind := kindOf(tag)
	if want := minFields[kind]; len(fields) < want {
		return nil, fmt.Errorf("%w: %s has %d, want at least %d", ErrTooFewFields, kind, len(fields), want)
	}

	switch kind {
	case KindTrack:
		return Track{Width: fields[0], Layer: fields[1], Points: fields[2]}, nil
	case KindPad:
		return Pad{
			Shape:      fields[0],
			X:          fields[1],
			Y:          fields[2],
			Width:      fields[3],
			Height:     fields[4],
			Layer:      fields[5],
			Number:     fields[6],
			HoleRadius: field(fields, 7),
			Points:     field(fields, 8),
			Rotation:   field(fields, 9),
		}, nil
	case KindArc:
		arc := Arc{Width: fields[0], Layer: fields[1], Candidates: []string{fields[2]}}
		if len(fields) > 3 {
			arc.Candidates = append(arc.Candidates, fields[3])
		}
		return arc, nil
	case KindCircle:
		return Circle{X: fields[0], Y: fields[1], Radius: fields[2], Width: fields[3], Layer: fields[4]}, nil
	case KindSolidRegion:
		return SolidRegion{Fields: fields}, nil
	case KindSVGNode:
		return SVGNode{JSON: fields[0]}, nil
	case KindVia:
		return Via{Fields: fields}, nil
	default:
		return Unsupported{Tag: tag, Fields: fields}, nil
	}
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
