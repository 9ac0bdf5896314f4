package easyeda

import (
	"encoding/json"
	"fmt"
)

// ModelRef is the 3D model reference carried by an SVGNODE
type ModelRef struct {
	UUID     string
	Title    string
	Z        string // mil
	Rotation string // "x,y,z" degrees
}

type svgNodeJSON struct {
	Attrs struct {
		UUID      FlexString `json:"uuid"`
		Title     FlexString `json:"title"`
		Z         FlexString `json:"z"`
		CRotation FlexString `json:"c_rotation"`
	} `json:"attrs"`
}

// Model decodes the node's attribute blob
func (n SVGNode) Model() (ModelRef, error) {
	var node svgNodeJSON
	if err := json.Unmarshal([]byte(n.JSON), &node); err != nil {
		return ModelRef{}, fmt.Errorf("failed to decode SVGNODE attributes: %w", err)
	}
	if node.Attrs.UUID == "" {
		return ModelRef{}, fmt.Errorf("SVGNODE has no model uuid")
	}
	ref := ModelRef{
		UUID:     string(node.Attrs.UUID),
		Title:    string(node.Attrs.Title),
		Z:        string(node.Attrs.Z),
		Rotation: string(node.Attrs.CRotation),
	}
	if ref.Z == "" {
		ref.Z = "0"
	}
	return ref, nil
}
