package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// MilsPerMM is the divisor used for mil to millimetre conversion
const MilsPerMM = 3.937

// MilToMM converts a length in mil to millimetres
func MilToMM(v float64) float64 {
	return v / MilsPerMM
}

// ConversionError reports a field that could not be coerced to a number
type ConversionError struct {
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to a number: %v", e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ParseNumber coerces a raw field without unit conversion
func ParseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ConversionError{Value: raw, Err: err}
	}
	return v, nil
}

// ParseMil coerces a raw field given in mil and converts it to millimetres
func ParseMil(raw string) (float64, error) {
	v, err := ParseNumber(raw)
	if err != nil {
		return 0, err
	}
	return MilToMM(v), nil
}

// parseMils converts several raw fields at once, stopping at the first failure
func parseMils(raw ...string) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, r := range raw {
		v, err := ParseMil(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
