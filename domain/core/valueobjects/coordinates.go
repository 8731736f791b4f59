package valueobjects

import (
	"fmt"

	pkgerrors "sensemaker-backend/pkg/errors"
)

// TriadCoordinates is a value object holding barycentric coordinates for a
// triad placement. x and y are each constrained to [0, 1]; the third
// coordinate is implicit (z = 1 - x - y) and never stored.
//
// z is deliberately not checked for non-negativity: x + y may exceed 1,
// placing the point outside the triangle. Tightening this would reject
// payloads the current deployments accept.
type TriadCoordinates struct {
	x float64
	y float64
}

// NewTriadCoordinates creates coordinates with range validation. All
// out-of-range axes are reported together.
func NewTriadCoordinates(x, y float64) (TriadCoordinates, error) {
	var violations []pkgerrors.Violation
	if x < 0 || x > 1 {
		violations = append(violations, pkgerrors.Violation{
			Field:  "x",
			Reason: fmt.Sprintf("must be between 0 and 1, got %v", x),
		})
	}
	if y < 0 || y > 1 {
		violations = append(violations, pkgerrors.Violation{
			Field:  "y",
			Reason: fmt.Sprintf("must be between 0 and 1, got %v", y),
		})
	}
	if len(violations) > 0 {
		return TriadCoordinates{}, pkgerrors.NewDomainValidationError(violations...)
	}
	return TriadCoordinates{x: x, y: y}, nil
}

// X returns the first barycentric coordinate
func (c TriadCoordinates) X() float64 { return c.x }

// Y returns the second barycentric coordinate
func (c TriadCoordinates) Y() float64 { return c.y }

// Z derives the implicit third barycentric coordinate
func (c TriadCoordinates) Z() float64 { return 1 - c.x - c.y }

// Equals checks if two coordinate pairs are equal
func (c TriadCoordinates) Equals(other TriadCoordinates) bool {
	return c.x == other.x && c.y == other.y
}
