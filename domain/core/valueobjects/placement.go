package valueobjects

import (
	pkgerrors "sensemaker-backend/pkg/errors"
)

// TriadPlacement associates a triad id with the submitter's coordinate
// placement. The id references a configured triad by convention only; it is
// not cross-checked against the loaded catalog here, because the catalog and
// the domain model travel through separate code paths.
type TriadPlacement struct {
	triadID     string
	coordinates TriadCoordinates
}

// NewTriadPlacement creates a placement with validation
func NewTriadPlacement(triadID string, coordinates TriadCoordinates) (TriadPlacement, error) {
	if triadID == "" {
		return TriadPlacement{}, pkgerrors.NewDomainValidationError(
			pkgerrors.Violation{Field: "triad_id", Reason: "is required"})
	}
	return TriadPlacement{triadID: triadID, coordinates: coordinates}, nil
}

// TriadID returns the referenced triad id
func (p TriadPlacement) TriadID() string { return p.triadID }

// Coordinates returns the barycentric placement
func (p TriadPlacement) Coordinates() TriadCoordinates { return p.coordinates }

// Equals checks if two placements are equal
func (p TriadPlacement) Equals(other TriadPlacement) bool {
	return p.triadID == other.triadID && p.coordinates.Equals(other.coordinates)
}
