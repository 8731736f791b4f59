// Package aggregates holds the Story aggregate root. A Story that exists is
// always valid: every invariant is enforced at construction and there is no
// construct-then-validate-later state.
package aggregates

import (
	"fmt"
	"time"
	"unicode/utf8"

	"sensemaker-backend/domain/core/valueobjects"
	pkgerrors "sensemaker-backend/pkg/errors"
)

const (
	// MinStoryLength is the minimum story text length in characters
	MinStoryLength = 50
	// MaxStoryLength is the maximum story text length in characters
	MaxStoryLength = 2000
	// PlacementCount is the required number of triad placements per story
	PlacementCount = 3

	// StatusPending is the processing status assigned at submission time.
	// The status is an opaque string; analysis pipelines downstream own any
	// further values and transitions.
	StatusPending = "pending"
)

// Story is the aggregate root for a single narrative submission: the story
// text, its three triad placements, optional pseudonymous metadata, and the
// submission timestamp. Everything except the processing status is immutable
// after construction.
type Story struct {
	id               string
	storyText        string
	triads           []valueobjects.TriadPlacement
	metadata         *valueobjects.StoryMetadata
	timestamp        time.Time
	processingStatus string
}

// NewStory creates a story aggregate with validation. A zero timestamp
// defaults to the current UTC instant; the processing status always starts
// as pending. All violations discoverable in one pass are reported together,
// checked in a fixed order: presence, then length, then placement
// cardinality and uniqueness.
func NewStory(
	id string,
	storyText string,
	triads []valueobjects.TriadPlacement,
	metadata *valueobjects.StoryMetadata,
	timestamp time.Time,
) (*Story, error) {
	var violations []pkgerrors.Violation

	// Presence
	if id == "" {
		violations = append(violations, pkgerrors.Violation{Field: "id", Reason: "is required"})
	}
	if storyText == "" {
		violations = append(violations, pkgerrors.Violation{Field: "story_text", Reason: "is required"})
	}
	if len(triads) == 0 {
		violations = append(violations, pkgerrors.Violation{Field: "triads", Reason: "is required"})
	}

	// Length. Counted in characters, not bytes.
	if storyText != "" {
		length := utf8.RuneCountInString(storyText)
		if length < MinStoryLength {
			violations = append(violations, pkgerrors.Violation{
				Field:  "story_text",
				Reason: fmt.Sprintf("must be at least %d characters, got %d", MinStoryLength, length),
			})
		} else if length > MaxStoryLength {
			violations = append(violations, pkgerrors.Violation{
				Field:  "story_text",
				Reason: fmt.Sprintf("must be at most %d characters, got %d", MaxStoryLength, length),
			})
		}
	}

	// Cardinality and uniqueness
	if len(triads) > 0 {
		if len(triads) != PlacementCount {
			violations = append(violations, pkgerrors.Violation{
				Field:  "triads",
				Reason: fmt.Sprintf("must contain exactly %d placements, got %d", PlacementCount, len(triads)),
			})
		}
		seen := make(map[string]struct{}, len(triads))
		for _, p := range triads {
			if _, dup := seen[p.TriadID()]; dup {
				violations = append(violations, pkgerrors.Violation{
					Field:  "triads",
					Reason: fmt.Sprintf("duplicate triad id %q", p.TriadID()),
				})
			}
			seen[p.TriadID()] = struct{}{}
		}
	}

	if len(violations) > 0 {
		return nil, pkgerrors.NewDomainValidationError(violations...)
	}

	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	story := &Story{
		id:               id,
		storyText:        storyText,
		triads:           append([]valueobjects.TriadPlacement(nil), triads...),
		timestamp:        timestamp.UTC(),
		processingStatus: StatusPending,
	}
	if metadata != nil {
		m := *metadata
		story.metadata = &m
	}
	return story, nil
}

// ID returns the story identifier
func (s *Story) ID() string { return s.id }

// StoryText returns the narrative text
func (s *Story) StoryText() string { return s.storyText }

// Triads returns the three triad placements in submission order
func (s *Story) Triads() []valueobjects.TriadPlacement {
	return append([]valueobjects.TriadPlacement(nil), s.triads...)
}

// Metadata returns the optional metadata, or nil when none was supplied
func (s *Story) Metadata() *valueobjects.StoryMetadata {
	if s.metadata == nil {
		return nil
	}
	m := *s.metadata
	return &m
}

// Timestamp returns the submission instant, always UTC
func (s *Story) Timestamp() time.Time { return s.timestamp }

// ProcessingStatus returns the current processing status
func (s *Story) ProcessingStatus() string { return s.processingStatus }

// SetProcessingStatus updates the processing status. The status is the one
// mutable field; it is an opaque string with no transition rules here.
func (s *Story) SetProcessingStatus(status string) error {
	if status == "" {
		return pkgerrors.NewDomainValidationError(
			pkgerrors.Violation{Field: "processing_status", Reason: "is required"})
	}
	s.processingStatus = status
	return nil
}

// Equals compares two stories field for field, including nested placements
// and optional metadata. Timestamps compare with time.Equal.
func (s *Story) Equals(other *Story) bool {
	if other == nil {
		return false
	}
	if s.id != other.id || s.storyText != other.storyText ||
		s.processingStatus != other.processingStatus ||
		!s.timestamp.Equal(other.timestamp) {
		return false
	}
	if len(s.triads) != len(other.triads) {
		return false
	}
	for i := range s.triads {
		if !s.triads[i].Equals(other.triads[i]) {
			return false
		}
	}
	if (s.metadata == nil) != (other.metadata == nil) {
		return false
	}
	if s.metadata != nil && !s.metadata.Equals(*other.metadata) {
		return false
	}
	return true
}
