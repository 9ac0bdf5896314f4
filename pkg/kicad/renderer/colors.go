package renderer

import "image/color"

// ColorTheme selects one of the built-in KiCad-like palettes
type ColorTheme int

const (
	ThemeClassic ColorTheme = iota
	ThemeKiCad2020
	ThemeBlueTone
	ThemeEagle
	ThemeNord
)

// ThemeNames maps theme enum to display name
var ThemeNames = map[ColorTheme]string{
	ThemeClassic:   "Classic",
	ThemeKiCad2020: "KiCad 2020",
	ThemeBlueTone:  "Blue Tone",
	ThemeEagle:     "Eagle",
	ThemeNord:      "Nord",
}

func (t ColorTheme) String() string {
	if name, ok := ThemeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// unknownLayerColor is used for layers a palette does not list
var unknownLayerColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// Palette holds the colours used to draw one footprint
type Palette struct {
	Background color.NRGBA
	Pad        color.NRGBA
	Drill      color.NRGBA
	Origin     color.NRGBA
	Layers     map[string]color.NRGBA
}

// Layer returns the colour for a layer name. Wildcard pad layers such as
// "*.Cu" resolve to the front layer of the same kind.
func (p Palette) Layer(layer string) color.NRGBA {
	if len(layer) > 2 && layer[:2] == "*." {
		layer = "F." + layer[2:]
	}
	if c, ok := p.Layers[layer]; ok {
		return c
	}
	return unknownLayerColor
}

// PaletteFor returns the palette of theme, falling back to Classic
func PaletteFor(theme ColorTheme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeClassic]
}

var (
	gold  = color.NRGBA{R: 227, G: 183, B: 46, A: 255}
	black = color.NRGBA{A: 255}
)

var palettes = map[ColorTheme]Palette{
	ThemeClassic: {
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
		Pad:        gold,
		Drill:      black,
		Origin:     color.NRGBA{R: 255, G: 255, B: 255, A: 160},
		Layers: map[string]color.NRGBA{
			"F.Cu":      {R: 200, G: 52, B: 52, A: 255},
			"B.Cu":      {R: 77, G: 127, B: 196, A: 255},
			"F.SilkS":   {R: 242, G: 237, B: 161, A: 255},
			"B.SilkS":   {R: 232, G: 178, B: 167, A: 255},
			"F.Mask":    {R: 216, G: 100, B: 255, A: 102},
			"B.Mask":    {R: 2, G: 255, B: 238, A: 102},
			"F.Paste":   {R: 180, G: 160, B: 154, A: 230},
			"B.Paste":   {R: 0, G: 194, B: 194, A: 230},
			"F.Fab":     {R: 175, G: 175, B: 175, A: 255},
			"B.Fab":     {R: 88, G: 93, B: 132, A: 255},
			"F.CrtYd":   {R: 255, G: 38, B: 226, A: 255},
			"B.CrtYd":   {R: 38, G: 233, B: 255, A: 255},
			"Dwgs.User": {R: 194, G: 194, B: 194, A: 255},
			"Cmts.User": {R: 89, G: 148, B: 220, A: 255},
			"Edge.Cuts": {R: 208, G: 210, B: 205, A: 255},
		},
	},
	ThemeKiCad2020: {
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
		Pad:        gold,
		Drill:      black,
		Origin:     color.NRGBA{R: 255, G: 255, B: 255, A: 160},
		Layers: map[string]color.NRGBA{
			"F.Cu":      {R: 179, G: 31, B: 31, A: 255},
			"B.Cu":      {R: 12, G: 98, B: 179, A: 255},
			"F.SilkS":   {R: 242, G: 237, B: 161, A: 255},
			"B.SilkS":   {R: 232, G: 178, B: 167, A: 255},
			"F.Mask":    {R: 132, G: 0, B: 132, A: 102},
			"B.Mask":    {R: 2, G: 132, B: 132, A: 102},
			"F.Fab":     {R: 128, G: 128, B: 128, A: 255},
			"B.Fab":     {R: 64, G: 64, B: 128, A: 255},
			"F.CrtYd":   {R: 255, G: 0, B: 255, A: 255},
			"B.CrtYd":   {R: 0, G: 255, B: 255, A: 255},
			"Dwgs.User": {R: 255, G: 255, B: 255, A: 255},
			"Cmts.User": {R: 0, G: 150, B: 255, A: 255},
			"Edge.Cuts": {R: 255, G: 255, B: 0, A: 255},
		},
	},
	ThemeBlueTone: {
		Background: color.NRGBA{R: 20, G: 60, B: 90, A: 255},
		Pad:        color.NRGBA{R: 200, G: 200, B: 230, A: 255},
		Drill:      black,
		Origin:     color.NRGBA{R: 242, G: 242, B: 255, A: 160},
		Layers: map[string]color.NRGBA{
			"F.Cu":      {R: 72, G: 72, B: 200, A: 255},
			"B.Cu":      {R: 0, G: 132, B: 132, A: 255},
			"F.SilkS":   {R: 242, G: 242, B: 255, A: 255},
			"B.SilkS":   {R: 178, G: 178, B: 232, A: 255},
			"F.Mask":    {R: 52, G: 52, B: 255, A: 102},
			"B.Mask":    {R: 2, G: 132, B: 255, A: 102},
			"F.Fab":     {R: 175, G: 175, B: 200, A: 255},
			"B.Fab":     {R: 88, G: 93, B: 180, A: 255},
			"F.CrtYd":   {R: 150, G: 150, B: 255, A: 255},
			"B.CrtYd":   {R: 38, G: 200, B: 255, A: 255},
			"Dwgs.User": {R: 194, G: 194, B: 255, A: 255},
			"Cmts.User": {R: 89, G: 148, B: 255, A: 255},
			"Edge.Cuts": {R: 208, G: 210, B: 255, A: 255},
		},
	},
	ThemeEagle: {
		Background: black,
		Pad:        color.NRGBA{R: 0, G: 204, B: 0, A: 255},
		Drill:      black,
		Origin:     color.NRGBA{R: 255, G: 255, B: 255, A: 160},
		Layers: map[string]color.NRGBA{
			"F.Cu":      {R: 204, G: 0, B: 0, A: 255},
			"B.Cu":      {R: 0, G: 0, B: 204, A: 255},
			"F.SilkS":   {R: 255, G: 255, B: 255, A: 255},
			"B.SilkS":   {R: 200, G: 200, B: 200, A: 255},
			"F.Mask":    {R: 200, G: 61, B: 217, A: 102},
			"B.Mask":    {R: 61, G: 217, B: 217, A: 102},
			"F.Fab":     {R: 200, G: 200, B: 200, A: 255},
			"B.Fab":     {R: 100, G: 100, B: 150, A: 255},
			"F.CrtYd":   {R: 255, G: 0, B: 255, A: 255},
			"B.CrtYd":   {R: 0, G: 255, B: 255, A: 255},
			"Dwgs.User": {R: 255, G: 255, B: 255, A: 255},
			"Cmts.User": {R: 132, G: 132, B: 132, A: 255},
			"Edge.Cuts": {R: 255, G: 255, B: 0, A: 255},
		},
	},
	ThemeNord: {
		Background: color.NRGBA{R: 46, G: 52, B: 64, A: 255},   // Nord0
		Pad:        color.NRGBA{R: 235, G: 203, B: 139, A: 255}, // Nord13
		Drill:      color.NRGBA{R: 59, G: 66, B: 82, A: 255},    // Nord1
		Origin:     color.NRGBA{R: 236, G: 239, B: 244, A: 160}, // Nord6
		Layers: map[string]color.NRGBA{
			"F.Cu":      {R: 191, G: 97, B: 106, A: 255},  // Nord11
			"B.Cu":      {R: 129, G: 161, B: 193, A: 255}, // Nord9
			"F.SilkS":   {R: 236, G: 239, B: 244, A: 255}, // Nord6
			"B.SilkS":   {R: 216, G: 222, B: 233, A: 255}, // Nord4
			"F.Mask":    {R: 180, G: 142, B: 173, A: 102}, // Nord15
			"B.Mask":    {R: 136, G: 192, B: 208, A: 102}, // Nord8
			"F.Fab":     {R: 216, G: 222, B: 233, A: 255}, // Nord4
			"B.Fab":     {R: 143, G: 188, B: 187, A: 255}, // Nord7
			"F.CrtYd":   {R: 180, G: 142, B: 173, A: 255}, // Nord15
			"B.CrtYd":   {R: 136, G: 192, B: 208, A: 255}, // Nord8
			"Dwgs.User": {R: 229, G: 233, B: 240, A: 255}, // Nord5
			"Cmts.User": {R: 94, G: 129, B: 172, A: 255},  // Nord10
			"Edge.Cuts": {R: 229, G: 233, B: 240, A: 255}, // Nord5
		},
	},
}
