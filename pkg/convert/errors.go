package convert

import "errors"

var (
	// ErrDegenerateArc is returned when the three arc points do not define a circle
	ErrDegenerateArc = errors.New("degenerate arc")

	// ErrUnknownPadShape is returned for through-hole pads with an unmapped shape
	ErrUnknownPadShape = errors.New("unknown pad shape")

	// ErrUnknownLayer is attached to layer fallback diagnostics
	ErrUnknownLayer = errors.New("layer correspondence not found")

	// ErrPadFailed is returned by Convert in strict mode when a pad is dropped
	ErrPadFailed = errors.New("pad conversion failed")
)
