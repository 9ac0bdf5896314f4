package renderer

import "strings"

// DrawOrder lists footprint layers bottom to top. Items on layers not listed
// here are drawn first.
var DrawOrder = []string{
	"B.CrtYd", "B.Fab", "B.SilkS", "B.Mask", "B.Paste", "B.Cu",
	"Dwgs.User", "Cmts.User", "Edge.Cuts",
	"F.Cu", "F.Paste", "F.Mask", "F.Fab", "F.SilkS", "F.CrtYd",
}

// LayerConfig controls which layers are visible during rendering. Layers
// without an explicit setting use the default.
type LayerConfig struct {
	visible      map[string]bool
	defaultShown bool
}

// NewLayerConfig creates a layer configuration with all layers visible
func NewLayerConfig() *LayerConfig {
	return &LayerConfig{visible: make(map[string]bool), defaultShown: true}
}

// SetVisible sets the visibility of a specific layer
func (lc *LayerConfig) SetVisible(layer string, visible bool) {
	lc.visible[layer] = visible
}

// Toggle flips the visibility of a layer
func (lc *LayerConfig) Toggle(layer string) {
	lc.SetVisible(layer, !lc.IsVisible(layer))
}

// IsVisible reports whether a layer is drawn
func (lc *LayerConfig) IsVisible(layer string) bool {
	if visible, exists := lc.visible[layer]; exists {
		return visible
	}
	return lc.defaultShown
}

// AnyVisible reports whether at least one of layers is drawn. Wildcard
// names such as "*.Cu" match either side.
func (lc *LayerConfig) AnyVisible(layers []string) bool {
	for _, layer := range layers {
		if rest, ok := strings.CutPrefix(layer, "*."); ok {
			if lc.IsVisible("F."+rest) || lc.IsVisible("B."+rest) {
				return true
			}
			continue
		}
		if lc.IsVisible(layer) {
			return true
		}
	}
	return false
}

// HideAll hides every layer
func (lc *LayerConfig) HideAll() {
	lc.visible = make(map[string]bool)
	lc.defaultShown = false
}

// ShowAll shows every layer
func (lc *LayerConfig) ShowAll() {
	lc.visible = make(map[string]bool)
	lc.defaultShown = true
}

// ShowOnly shows only the specified layers, hiding all others
func (lc *LayerConfig) ShowOnly(layers ...string) {
	lc.HideAll()
	for _, layer := range layers {
		lc.SetVisible(layer, true)
	}
}

func (lc *LayerConfig) ShowCopperOnly() {
	lc.ShowOnly("F.Cu", "B.Cu")
}

func (lc *LayerConfig) HideCourtyard() {
	lc.SetVisible("F.CrtYd", false)
	lc.SetVisible("B.CrtYd", false)
}

// layerRank returns the position of layer in DrawOrder, or -1
func layerRank(layer string) int {
	for i, l := range DrawOrder {
		if l == layer {
			return i
		}
	}
	return -1
}
