package convert

import (
	"fmt"
	"regexp"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
)

// Config controls footprint conversion.
type Config struct {
	// Output naming
	Name string // Footprint name; defaults to the document's package name

	// Pad rules
	AssemblyProcess easyeda.AssemblyProcess // Force SMT or THT; empty means detect from pads
	Strict          bool                    // Abort when a pad cannot be converted (default: false)

	// Layers
	DefaultLayer string // Fallback for unmapped layer ids (default: F.SilkS)

	// Decorations
	Courtyard       bool    // Draw an F.CrtYd rectangle around the bounds (default: true)
	CourtyardMargin float64 // mm added on every side of the courtyard (default: 0.25)
	CourtyardWidth  float64 // Courtyard line width in mm (default: 0.05)
	TextOffset      float64 // Distance of reference/value texts from the bounds in mm (default: 1)
}

// DefaultConfig returns a Config with sensible defaults for most footprints.
func DefaultConfig() *Config {
	return &Config{
		DefaultLayer:    DefaultLayer,
		Courtyard:       true,
		CourtyardMargin: 0.25,
		CourtyardWidth:  0.05,
		TextOffset:      1,
	}
}

var layerNamePattern = regexp.MustCompile(`^(\*|[FB])\.[A-Za-z]+$|^(Edge\.Cuts|Dwgs\.User|Cmts\.User)$`)

// Validate checks the configuration and fills in zero values.
func (c *Config) Validate() error {
	if c.DefaultLayer == "" {
		c.DefaultLayer = DefaultLayer
	}
	if !layerNamePattern.MatchString(c.DefaultLayer) {
		return fmt.Errorf("invalid default layer %q", c.DefaultLayer)
	}

	if c.AssemblyProcess != "" {
		ap, err := easyeda.ParseAssemblyProcess(string(c.AssemblyProcess))
		if err != nil {
			return err
		}
		c.AssemblyProcess = ap
	}

	if c.CourtyardMargin < 0 {
		return fmt.Errorf("courtyard margin must not be negative, got %g", c.CourtyardMargin)
	}
	if c.CourtyardWidth <= 0 {
		c.CourtyardWidth = 0.05
	}
	if c.TextOffset <= 0 {
		c.TextOffset = 1
	}

	return nil
}
