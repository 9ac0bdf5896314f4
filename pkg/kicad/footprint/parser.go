package footprint

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp/kicadsexp"
)

// ParseFile reads a .kicad_mod file from disk
func ParseFile(path string) (*Footprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a footprint from r. Both (footprint ...) and the legacy
// (module ...) root are accepted. Unknown nodes are ignored.
func Parse(r io.Reader) (*Footprint, error) {
	exprs, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	root := exprs[0]
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root node: %w", err)
	}
	if rootName != "footprint" && rootName != "module" {
		return nil, fmt.Errorf("expected 'footprint' root node, got %q", rootName)
	}

	name, err := sexp.GetString(root, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}

	fp := New(name)
	if layerNode, ok := sexp.FindNode(root, "layer"); ok {
		if layer, err := sexp.GetString(layerNode, 1); err == nil {
			fp.Layer = layer
		}
	}
	if node, ok := sexp.FindNode(root, "descr"); ok {
		fp.Description, _ = sexp.GetString(node, 1)
	}
	if node, ok := sexp.FindNode(root, "tags"); ok {
		fp.Tags, _ = sexp.GetString(node, 1)
	}
	if node, ok := sexp.FindNode(root, "attr"); ok {
		if attr, err := sexp.GetString(node, 1); err == nil {
			fp.Attribute = Attribute(attr)
		}
	}

	for i, node := range sexp.GetListItems(root) {
		if node.IsLeaf() {
			continue
		}
		kind, err := sexp.GetNodeName(node)
		if err != nil {
			continue
		}

		var item Item
		switch kind {
		case "fp_line":
			item, err = parseLine(node)
		case "fp_arc":
			item, err = parseArc(node)
		case "fp_circle":
			item, err = parseCircle(node)
		case "fp_poly":
			item, err = parsePolygon(node)
		case "pad":
			item, err = parsePad(node)
		case "fp_text":
			item, err = parseText(node)
		case "model":
			item, err = parseModel(node)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s (element %d): %w", kind, i+1, err)
		}
		fp.Append(item)
	}

	return fp, nil
}

// parseLine extracts (fp_line (start x y) (end x y) (stroke ...) (layer L))
func parseLine(node kicadsexp.Sexp) (Line, error) {
	var line Line
	var err error

	if line.Start, err = requirePosition(node, "start"); err != nil {
		return line, err
	}
	if line.End, err = requirePosition(node, "end"); err != nil {
		return line, err
	}
	line.Width = parseWidth(node)
	line.Layer, err = requireLayer(node)
	return line, err
}

// parseArc extracts (fp_arc (start) (mid) (end) ...). The centre is
// recovered from the three points.
func parseArc(node kicadsexp.Sexp) (Arc, error) {
	var arc Arc

	start, err := requirePosition(node, "start")
	if err != nil {
		return arc, err
	}
	mid, err := requirePosition(node, "mid")
	if err != nil {
		return arc, err
	}
	end, err := requirePosition(node, "end")
	if err != nil {
		return arc, err
	}

	center, ok := circumcenter(start, mid, end)
	if !ok {
		return arc, fmt.Errorf("arc points are collinear")
	}

	arc.Center, arc.Start, arc.End = center, start, end
	arc = arc.Through(mid)
	arc.Width = parseWidth(node)
	arc.Layer, err = requireLayer(node)
	return arc, err
}

// parseCircle extracts (fp_circle (center x y) (end x y) ...)
func parseCircle(node kicadsexp.Sexp) (Circle, error) {
	var circle Circle

	center, err := requirePosition(node, "center")
	if err != nil {
		return circle, err
	}
	end, err := requirePosition(node, "end")
	if err != nil {
		return circle, err
	}

	circle.Center = center
	circle.Radius = center.Distance(end)
	circle.Width = parseWidth(node)
	circle.Layer, err = requireLayer(node)
	return circle, err
}

// parsePolygon extracts (fp_poly (pts (xy x y)...) ...)
func parsePolygon(node kicadsexp.Sexp) (Polygon, error) {
	var poly Polygon
	var err error

	if poly.Points, err = parsePoints(node); err != nil {
		return poly, err
	}
	poly.Width = parseWidth(node)
	poly.Filled = parseFilled(node)
	poly.Layer, err = requireLayer(node)
	return poly, err
}

// parsePad extracts (pad "number" type shape (at x y [angle]) (size w h) (drill d) (layers ...) ...)
func parsePad(node kicadsexp.Sexp) (Pad, error) {
	var pad Pad

	number, err := sexp.GetString(node, 1)
	if err != nil {
		return pad, fmt.Errorf("failed to parse pad number: %w", err)
	}
	padType, err := sexp.GetString(node, 2)
	if err != nil {
		return pad, fmt.Errorf("failed to parse pad type: %w", err)
	}
	shape, err := sexp.GetString(node, 3)
	if err != nil {
		return pad, fmt.Errorf("failed to parse pad shape: %w", err)
	}
	pad.Number, pad.Type, pad.Shape = number, PadType(padType), PadShape(shape)

	atNode, ok := sexp.FindNode(node, "at")
	if !ok {
		return pad, fmt.Errorf("missing required 'at' position")
	}
	at, err := sexp.GetAt(atNode)
	if err != nil {
		return pad, fmt.Errorf("failed to parse pad position: %w", err)
	}
	pad.Position = at.Position
	pad.Rotation = float64(at.Angle)

	sizeNode, ok := sexp.FindNode(node, "size")
	if !ok {
		return pad, fmt.Errorf("missing required 'size' field")
	}
	size, err := sexp.GetPositionXY(sizeNode)
	if err != nil {
		return pad, fmt.Errorf("failed to parse pad size: %w", err)
	}
	pad.Size = Size{Width: size.X, Height: size.Y}

	if drillNode, ok := sexp.FindNode(node, "drill"); ok {
		if drill, err := sexp.GetFloat(drillNode, 1); err == nil {
			pad.Drill = drill
		}
	}

	layersNode, ok := sexp.FindNode(node, "layers")
	if !ok {
		return pad, fmt.Errorf("missing required 'layers' field")
	}
	pad.Layers = sexp.GetStringList(layersNode)

	if primitives, ok := sexp.FindNode(node, "primitives"); ok {
		for _, polyNode := range sexp.FindAllNodes(primitives, "gr_poly") {
			points, err := parsePoints(polyNode)
			if err != nil {
				return pad, fmt.Errorf("failed to parse custom pad primitive: %w", err)
			}
			pad.Primitives = append(pad.Primitives, Polygon{
				Points: points,
				Width:  parseWidth(polyNode),
				Filled: parseFilled(polyNode),
			})
		}
	}

	return pad, nil
}

// parseText extracts (fp_text kind "text" (at x y [angle]) (layer L) (effects (font (size h w) (thickness t))))
func parseText(node kicadsexp.Sexp) (Text, error) {
	var text Text

	kind, err := sexp.GetString(node, 1)
	if err != nil {
		return text, fmt.Errorf("failed to parse text kind: %w", err)
	}
	value, err := sexp.GetString(node, 2)
	if err != nil {
		return text, fmt.Errorf("failed to parse text value: %w", err)
	}
	text.Type, text.Text = TextKind(kind), value

	if atNode, ok := sexp.FindNode(node, "at"); ok {
		if at, err := sexp.GetAt(atNode); err == nil {
			text.Position = at.Position
		}
	}
	if text.Layer, err = requireLayer(node); err != nil {
		return text, err
	}

	if effects, ok := sexp.FindNode(node, "effects"); ok {
		if font, ok := sexp.FindNode(effects, "font"); ok {
			if sizeNode, ok := sexp.FindNode(font, "size"); ok {
				text.Size, _ = sexp.GetFloat(sizeNode, 1)
			}
			if thick, ok := sexp.FindNode(font, "thickness"); ok {
				text.Thickness, _ = sexp.GetFloat(thick, 1)
			}
		}
	}
	return text, nil
}

// parseModel extracts (model "path" (offset (xyz ...)) (scale (xyz ...)) (rotate (xyz ...)))
func parseModel(node kicadsexp.Sexp) (Model, error) {
	path, err := sexp.GetString(node, 1)
	if err != nil {
		return Model{}, fmt.Errorf("failed to parse model path: %w", err)
	}

	model := Model{Path: path, Scale: Vec3{X: 1, Y: 1, Z: 1}}
	for key, dst := range map[string]*Vec3{"offset": &model.Offset, "scale": &model.Scale, "rotate": &model.Rotation} {
		outer, ok := sexp.FindNode(node, key)
		if !ok {
			continue
		}
		xyz, ok := sexp.FindNode(outer, "xyz")
		if !ok {
			continue
		}
		var v Vec3
		if v.X, err = sexp.GetFloat(xyz, 1); err != nil {
			return model, fmt.Errorf("failed to parse model %s: %w", key, err)
		}
		if v.Y, err = sexp.GetFloat(xyz, 2); err != nil {
			return model, fmt.Errorf("failed to parse model %s: %w", key, err)
		}
		if v.Z, err = sexp.GetFloat(xyz, 3); err != nil {
			return model, fmt.Errorf("failed to parse model %s: %w", key, err)
		}
		*dst = v
	}
	return model, nil
}

func requirePosition(node kicadsexp.Sexp, key string) (Position, error) {
	child, ok := sexp.FindNode(node, key)
	if !ok {
		return Position{}, fmt.Errorf("missing required '%s' field", key)
	}
	pos, err := sexp.GetPositionXY(child)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return pos, nil
}

func requireLayer(node kicadsexp.Sexp) (string, error) {
	layerNode, ok := sexp.FindNode(node, "layer")
	if !ok {
		return "", fmt.Errorf("missing required 'layer' field")
	}
	layer, err := sexp.GetString(layerNode, 1)
	if err != nil {
		return "", fmt.Errorf("failed to parse layer: %w", err)
	}
	return layer, nil
}

// parseWidth reads (stroke (width w) ...) or the legacy (width w)
func parseWidth(node kicadsexp.Sexp) float64 {
	if strokeNode, ok := sexp.FindNode(node, "stroke"); ok {
		if stroke, err := sexp.GetStroke(strokeNode); err == nil {
			return stroke.Width
		}
	}
	if widthNode, ok := sexp.FindNode(node, "width"); ok {
		if w, err := sexp.GetFloat(widthNode, 1); err == nil {
			return w
		}
	}
	return 0
}

func parseFilled(node kicadsexp.Sexp) bool {
	fillNode, ok := sexp.FindNode(node, "fill")
	if !ok {
		return false
	}
	fill, err := sexp.GetString(fillNode, 1)
	if err != nil {
		return false
	}
	return fill == "solid" || fill == "yes"
}

func parsePoints(node kicadsexp.Sexp) ([]Position, error) {
	ptsNode, ok := sexp.FindNode(node, "pts")
	if !ok {
		return nil, fmt.Errorf("missing required 'pts' field")
	}
	var points []Position
	for _, xyNode := range sexp.FindAllNodes(ptsNode, "xy") {
		pt, err := sexp.GetPositionXY(xyNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse point: %w", err)
		}
		points = append(points, pt)
	}
	return points, nil
}
