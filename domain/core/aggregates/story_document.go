package aggregates

import (
	"time"

	"sensemaker-backend/domain/core/valueobjects"
	pkgerrors "sensemaker-backend/pkg/errors"
)

// StoryDocument is the persisted representation of a story, keyed by the
// story id in whatever store holds it. The shape is shared by the JSON read
// surface and the DynamoDB adapter, so a Story survives the round trip
// Story -> document -> Story losslessly.
type StoryDocument struct {
	StoryText        string              `json:"story_text" dynamodbav:"story_text"`
	Triads           []PlacementDocument `json:"triads" dynamodbav:"triads"`
	Metadata         *MetadataDocument   `json:"metadata" dynamodbav:"metadata"`
	Timestamp        string              `json:"timestamp" dynamodbav:"timestamp"`
	ProcessingStatus string              `json:"processing_status" dynamodbav:"processing_status"`
}

// PlacementDocument is the persisted shape of a single triad placement
type PlacementDocument struct {
	TriadID     string              `json:"triad_id" dynamodbav:"triad_id"`
	Coordinates CoordinatesDocument `json:"coordinates" dynamodbav:"coordinates"`
}

// CoordinatesDocument is the persisted shape of barycentric coordinates
type CoordinatesDocument struct {
	X float64 `json:"x" dynamodbav:"x"`
	Y float64 `json:"y" dynamodbav:"y"`
}

// MetadataDocument is the persisted shape of optional story metadata
type MetadataDocument struct {
	UserPseudonym *string `json:"user_pseudonym" dynamodbav:"user_pseudonym"`
	Department    *string `json:"department" dynamodbav:"department"`
	Role          *string `json:"role" dynamodbav:"role"`
	ToolContext   *string `json:"tool_context" dynamodbav:"tool_context"`
}

// ToDocument converts the story to its persisted representation. Timestamps
// serialize as RFC 3339 with nanoseconds, always UTC. Absent metadata stays
// null, never an empty object.
func (s *Story) ToDocument() StoryDocument {
	doc := StoryDocument{
		StoryText:        s.storyText,
		Triads:           make([]PlacementDocument, len(s.triads)),
		Timestamp:        s.timestamp.UTC().Format(time.RFC3339Nano),
		ProcessingStatus: s.processingStatus,
	}
	for i, p := range s.triads {
		doc.Triads[i] = PlacementDocument{
			TriadID: p.TriadID(),
			Coordinates: CoordinatesDocument{
				X: p.Coordinates().X(),
				Y: p.Coordinates().Y(),
			},
		}
	}
	if s.metadata != nil {
		doc.Metadata = &MetadataDocument{
			UserPseudonym: s.metadata.UserPseudonym(),
			Department:    s.metadata.Department(),
			Role:          s.metadata.Role(),
			ToolContext:   s.metadata.ToolContext(),
		}
	}
	return doc
}

// ReconstructStory rebuilds a story aggregate from its persisted
// representation. Every domain invariant is re-checked; a stored document
// that no longer satisfies them does not reconstruct. An empty stored status
// reconstructs as pending.
func ReconstructStory(id string, doc StoryDocument) (*Story, error) {
	timestamp, err := time.Parse(time.RFC3339Nano, doc.Timestamp)
	if err != nil {
		return nil, pkgerrors.NewDomainValidationError(pkgerrors.Violation{
			Field:  "timestamp",
			Reason: "must be an RFC 3339 instant",
		}).WithCause(err)
	}

	placements := make([]valueobjects.TriadPlacement, 0, len(doc.Triads))
	for _, pd := range doc.Triads {
		coords, err := valueobjects.NewTriadCoordinates(pd.Coordinates.X, pd.Coordinates.Y)
		if err != nil {
			return nil, err
		}
		placement, err := valueobjects.NewTriadPlacement(pd.TriadID, coords)
		if err != nil {
			return nil, err
		}
		placements = append(placements, placement)
	}

	var metadata *valueobjects.StoryMetadata
	if doc.Metadata != nil {
		m := valueobjects.NewStoryMetadata(
			doc.Metadata.UserPseudonym,
			doc.Metadata.Department,
			doc.Metadata.Role,
			doc.Metadata.ToolContext,
		)
		metadata = &m
	}

	story, err := NewStory(id, doc.StoryText, placements, metadata, timestamp)
	if err != nil {
		return nil, err
	}
	if doc.ProcessingStatus != "" {
		if err := story.SetProcessingStatus(doc.ProcessingStatus); err != nil {
			return nil, err
		}
	}
	return story, nil
}
