package easyeda

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Document is a footprint as exported by EasyEDA: an origin and a list of
// shape strings.
type Document struct {
	Name    string
	OriginX string // mil
	OriginY string // mil
	Shapes  []string
}

// Primitives decodes every shape. Shapes that fail to decode are returned
// as errors alongside their index; the slice of primitives keeps the
// successfully decoded ones in order.
func (d *Document) Primitives() ([]Primitive, map[int]error) {
	var prims []Primitive
	var errs map[int]error
	for i, raw := range d.Shapes {
		p, err := DecodeShape(raw)
		if err != nil {
			if errs == nil {
				errs = make(map[int]error)
			}
			errs[i] = err
			continue
		}
		prims = append(prims, p)
	}
	return prims, errs
}

// LoadFile reads a document from disk
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads either an EasyEDA component JSON document or a plain text
// file holding one shape string per line. Blank lines and lines starting
// with '#' are ignored in text files.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeJSON(trimmed)
	}
	return decodeText(trimmed)
}

func decodeText(data []byte) (*Document, error) {
	doc := &Document{OriginX: "0", OriginY: "0"}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		doc.Shapes = append(doc.Shapes, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shapes: %w", err)
	}
	if len(doc.Shapes) == 0 {
		return nil, ErrNoShapes
	}
	return doc, nil
}

// rawDocument covers the component API response, its "result" payload and
// a bare footprint export.
type rawDocument struct {
	Title         string       `json:"title"`
	DataStr       *rawDataStr  `json:"dataStr"`
	Result        *rawDocument `json:"result"`
	PackageDetail *rawDocument `json:"packageDetail"`
}

type rawDataStr struct {
	Head  rawHead  `json:"head"`
	Shape []string `json:"shape"`
}

type rawHead struct {
	X     FlexString            `json:"x"`
	Y     FlexString            `json:"y"`
	CPara map[string]FlexString `json:"c_para"`
}

// UnmarshalJSON accepts dataStr both as an object and as a JSON encoded string
func (d *rawDataStr) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	type plain rawDataStr
	return json.Unmarshal(b, (*plain)(d))
}

func decodeJSON(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON document: %w", err)
	}

	// unwrap API envelopes until a node with shape data is found
	node := &raw
	for node.DataStr == nil {
		switch {
		case node.Result != nil:
			node = node.Result
		case node.PackageDetail != nil:
			node = node.PackageDetail
		default:
			return nil, ErrNoShapes
		}
	}
	if len(node.DataStr.Shape) == 0 {
		return nil, ErrNoShapes
	}

	head := node.DataStr.Head
	doc := &Document{
		Name:    string(head.CPara["package"]),
		OriginX: string(head.X),
		OriginY: string(head.Y),
		Shapes:  node.DataStr.Shape,
	}
	if doc.Name == "" {
		doc.Name = node.Title
	}
	if doc.OriginX == "" {
		doc.OriginX = "0"
	}
	if doc.OriginY == "" {
		doc.OriginY = "0"
	}
	return doc, nil
}

// FlexString decodes a JSON string or number into its textual form
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = FlexString(b)
	return nil
}
