package easyeda

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewFields is returned when a shape string is shorter than its kind requires
	ErrTooFewFields = errors.New("too few fields")

	// ErrEmptyShape is returned for blank shape strings
	ErrEmptyShape = errors.New("empty shape")

	// ErrNoArcPath is returned when no arc field holds an SVG path
	ErrNoArcPath = errors.New("no arc path found")

	// ErrNoShapes is returned for documents without shape data
	ErrNoShapes = errors.New("document has no shapes")
)

// UnknownAssemblyError reports an assembly process other than SMT or THT
type UnknownAssemblyError struct {
	Value string
}

func (e *UnknownAssemblyError) Error() string {
	return fmt.Sprintf("unknown assembly process %q", e.Value)
}
