package footprint

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FormatVersion is the KiCad 6 footprint file format version written by WriteTo
const FormatVersion = 20211014

// Generator is written into the (generator ...) node
const Generator = "easyeda2kicad"

// itemNamespace seeds the deterministic per-item UUIDs
var itemNamespace = uuid.MustParse("6f1c0a4e-8d2b-4f6a-9a53-0e7c2b1d4e58")

// ItemUUID returns the stable identifier of the index-th item of the named
// footprint. The same footprint always serialises to the same bytes.
func ItemUUID(name string, index int) uuid.UUID {
	return uuid.NewSHA1(itemNamespace, []byte(name+":"+strconv.Itoa(index)))
}

// WriteTo serialises the footprint as a .kicad_mod s-expression
func (fp *Footprint) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	layer := fp.Layer
	if layer == "" {
		layer = "F.Cu"
	}

	cw.printf("(footprint %s (version %d) (generator %s)\n", quote(fp.Name), FormatVersion, Generator)
	cw.printf("  (layer %s)\n", quote(layer))
	if fp.Description != "" {
		cw.printf("  (descr %s)\n", quote(fp.Description))
	}
	if fp.Tags != "" {
		cw.printf("  (tags %s)\n", quote(fp.Tags))
	}
	if fp.Attribute != "" {
		cw.printf("  (attr %s)\n", fp.Attribute)
	}

	for i, item := range fp.Items {
		id := ItemUUID(fp.Name, i)
		switch it := item.(type) {
		case Text:
			writeText(cw, it, id)
		case Line:
			cw.printf("  (fp_line (start %s) (end %s) %s (layer %s) (tstamp %s))\n",
				xy(it.Start), xy(it.End), stroke(it.Width), quote(it.Layer), id)
		case Arc:
			cw.printf("  (fp_arc (start %s) (mid %s) (end %s) %s (layer %s) (tstamp %s))\n",
				xy(it.Start), xy(it.Mid()), xy(it.End), stroke(it.Width), quote(it.Layer), id)
		case Circle:
			end := Position{X: it.Center.X + it.Radius, Y: it.Center.Y}
			cw.printf("  (fp_circle (center %s) (end %s) %s (fill none) (layer %s) (tstamp %s))\n",
				xy(it.Center), xy(end), stroke(it.Width), quote(it.Layer), id)
		case Polygon:
			cw.printf("  (fp_poly %s %s (fill %s) (layer %s) (tstamp %s))\n",
				pts(it.Points), stroke(it.Width), fillKeyword(it.Filled, "solid"), quote(it.Layer), id)
		case Pad:
			writePad(cw, it, id)
		case Model:
			// models carry no identifier
		default:
			return cw.n, fmt.Errorf("unsupported footprint item %T", item)
		}
	}

	// KiCad expects models after all other items
	for _, m := range fp.Models() {
		cw.printf("  (model %s\n", quote(m.Path))
		cw.printf("    (offset (xyz %s %s %s))\n", num(m.Offset.X), num(m.Offset.Y), num(m.Offset.Z))
		cw.printf("    (scale (xyz %s %s %s))\n", num(m.Scale.X), num(m.Scale.Y), num(m.Scale.Z))
		cw.printf("    (rotate (xyz %s %s %s))\n", num(m.Rotation.X), num(m.Rotation.Y), num(m.Rotation.Z))
		cw.printf("  )\n")
	}

	cw.printf(")\n")

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// String renders the footprint as it would be written to disk
func (fp *Footprint) String() string {
	var b strings.Builder
	if _, err := fp.WriteTo(&b); err != nil {
		return ""
	}
	return b.String()
}

func writeText(cw *countingWriter, t Text, id uuid.UUID) {
	size := t.Size
	if size == 0 {
		size = 1
	}
	thickness := t.Thickness
	if thickness == 0 {
		thickness = 0.15
	}
	cw.printf("  (fp_text %s %s (at %s) (layer %s)\n", t.Type, quote(t.Text), xy(t.Position), quote(t.Layer))
	cw.printf("    (effects (font (size %s %s) (thickness %s)))\n", num(size), num(size), num(thickness))
	cw.printf("    (tstamp %s)\n", id)
	cw.printf("  )\n")
}

func writePad(cw *countingWriter, p Pad, id uuid.UUID) {
	at := xy(p.Position)
	if p.Rotation != 0 {
		at += " " + num(p.Rotation)
	}
	cw.printf("  (pad %s %s %s (at %s) (size %s %s)", quote(p.Number), p.Type, p.Shape, at, num(p.Size.Width), num(p.Size.Height))
	if p.Type == PadThroughHole && p.Drill > 0 {
		cw.printf(" (drill %s)", num(p.Drill))
	}
	layers := make([]string, len(p.Layers))
	for i, l := range p.Layers {
		layers[i] = quote(l)
	}
	cw.printf(" (layers %s)", strings.Join(layers, " "))

	if p.Shape == ShapeCustom && len(p.Primitives) > 0 {
		cw.printf("\n    (options (clearance outline) (anchor circle))\n")
		cw.printf("    (primitives\n")
		for _, poly := range p.Primitives {
			cw.printf("      (gr_poly %s (width %s) (fill %s))\n", pts(poly.Points), num(poly.Width), fillKeyword(poly.Filled, "yes"))
		}
		cw.printf("    )\n    (tstamp %s)\n  )\n", id)
		return
	}
	cw.printf(" (tstamp %s))\n", id)
}

func fillKeyword(filled bool, yes string) string {
	if filled {
		return yes
	}
	return "none"
}

func stroke(width float64) string {
	return "(stroke (width " + num(width) + ") (type solid))"
}

func pts(points []Position) string {
	var b strings.Builder
	b.WriteString("(pts")
	for _, p := range points {
		b.WriteString(" (xy ")
		b.WriteString(xy(p))
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

func xy(p Position) string {
	return num(p.X) + " " + num(p.Y)
}

// num formats a coordinate with at most six decimals and no trailing zeros
func num(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}
