package convert

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
)

// DefaultLayer is used when an EasyEDA layer id has no KiCad counterpart
const DefaultLayer = "F.SilkS"

// layerTable maps EasyEDA layer ids to KiCad layer names
var layerTable = map[string]string{
	"1":   "F.Cu",
	"2":   "B.Cu",
	"3":   "F.SilkS",
	"4":   "B.SilkS",
	"5":   "F.Paste",
	"6":   "B.Paste",
	"7":   "F.Mask",
	"8":   "B.Mask",
	"12":  "F.Fab",
	"100": "F.SilkS",
	"101": "F.SilkS",
}

// LayerIDs returns the mapped EasyEDA layer ids
func LayerIDs() []string {
	ids := make([]string, 0, len(layerTable))
	for id := range layerTable {
		ids = append(ids, id)
	}
	return ids
}

// ResolveLayer maps an EasyEDA layer id to a KiCad layer name. On a miss it
// returns DefaultLayer and false.
func ResolveLayer(raw string) (string, bool) {
	if layer, ok := layerTable[raw]; ok {
		return layer, true
	}
	return DefaultLayer, false
}

// resolveLayer resolves raw and reports a miss at the given level. The
// configured fallback replaces DefaultLayer.
func (c *Converter) resolveLayer(raw string, kind easyeda.Kind, level zapcore.Level) string {
	if layer, ok := ResolveLayer(raw); ok {
		return layer
	}

	fallback := c.cfg.DefaultLayer
	if ce := c.logger.Check(level, "layer correspondence not found, using fallback"); ce != nil {
		fields := []zap.Field{
			zap.String("kind", string(kind)),
			zap.String("layer", raw),
			zap.String("fallback", fallback),
		}
		if level >= zapcore.ErrorLevel {
			fields = append(fields, zap.Error(fmt.Errorf("%w: %q", ErrUnknownLayer, raw)))
		}
		ce.Write(fields...)
	}
	return fallback
}
