package easyeda

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// PathLexer tokenises the single-arc SVG paths found in ARC shapes
var PathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Command", Pattern: `[MA]`},
	{Name: "Number", Pattern: `[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// ArcPath is "M sx,sy A rx,ry rotation largeArc sweep ex,ey".
// Commas between coordinates are optional. Values stay raw.
type ArcPath struct {
	Start    PathPoint `"M" @@`
	Radius   PathPoint `"A" @@`
	Rotation string    `@Number`
	LargeArc string    `@Number`
	Sweep    string    `@Number`
	End      PathPoint `@@`
}

// PathPoint is an "x,y" or "x y" pair
type PathPoint struct {
	X string `@Number ","?`
	Y string `@Number`
}

var pathParser = participle.MustBuild[ArcPath](
	participle.Lexer(PathLexer),
	participle.Elide("Whitespace"),
)

// ParseArcPath parses an ARC shape's SVG path
func ParseArcPath(path string) (*ArcPath, error) {
	ap, err := pathParser.ParseString("", path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arc path %q: %w", path, err)
	}
	return ap, nil
}
