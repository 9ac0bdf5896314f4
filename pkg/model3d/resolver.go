// Package model3d attaches 3D models referenced by EasyEDA SVGNODE shapes to
// converted footprints.
package model3d

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/convert"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
)

// DefaultExtension is the model file type KiCad loads for VRML exports
const DefaultExtension = ".wrl"

// LibraryResolver maps a model uuid to a file in a local model directory.
// Dir may contain KiCad path variables such as ${KIPRJMOD}; it is written
// into the footprint as-is.
type LibraryResolver struct {
	Dir         string
	Extension   string // defaults to DefaultExtension
	RequireFile bool   // fail when the model file does not exist on disk
	Logger      *zap.Logger
}

// ResolveModel appends a footprint.Model for id. translationZ is in mm and
// rotation is "x,y,z" in degrees; a blank rotation means no rotation.
func (r *LibraryResolver) ResolveModel(id string, ctx *convert.Context, acc convert.Accumulator, translationZ float64, rotation string) error {
	if id == "" {
		return fmt.Errorf("empty model id")
	}

	rot, err := ParseRotation(rotation)
	if err != nil {
		return err
	}

	path := r.Path(id)
	if r.RequireFile {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("model file for %s: %w", id, err)
		}
	}

	if r.Logger != nil {
		r.Logger.Debug("attaching 3D model",
			zap.String("footprint", ctx.Name),
			zap.String("model", id),
			zap.String("path", path))
	}

	acc.Append(footprint.Model{
		Path:     path,
		Offset:   footprint.Vec3{Z: translationZ},
		Scale:    footprint.Vec3{X: 1, Y: 1, Z: 1},
		Rotation: rot,
	})
	return nil
}

// Path returns the model file path for id
func (r *LibraryResolver) Path(id string) string {
	ext := r.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if r.Dir == "" {
		return id + ext
	}
	return filepath.ToSlash(filepath.Join(r.Dir, id+ext))
}

// ParseRotation parses "x,y,z" degrees. Missing components are zero.
func ParseRotation(s string) (footprint.Vec3, error) {
	var v footprint.Vec3
	s = strings.TrimSpace(s)
	if s == "" {
		return v, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return v, fmt.Errorf("rotation %q has %d components, want at most 3", s, len(parts))
	}
	dst := []*float64{&v.X, &v.Y, &v.Z}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		f, err := convert.ParseNumber(p)
		if err != nil {
			return footprint.Vec3{}, fmt.Errorf("rotation %q: %w", s, err)
		}
		*dst[i] = f
	}
	return v, nil
}
