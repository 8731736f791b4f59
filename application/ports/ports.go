// Package ports defines the capability interfaces the application layer
// depends on. Concrete adapters are selected at wiring time; the application
// never assumes anything about the backing technology.
package ports

import (
	"context"
	"time"

	"sensemaker-backend/domain/core/aggregates"
	"sensemaker-backend/domain/core/valueobjects"
)

// StoryRepository is the persistence boundary for story aggregates.
type StoryRepository interface {
	// Save persists a story as an idempotent upsert keyed by the story's own
	// id and returns the confirmed id. The store must accept the
	// caller-assigned id and either store and return it unchanged, or fail
	// with a StorageError; a silently substituted id is never accepted.
	Save(ctx context.Context, story *aggregates.Story) (string, error)

	// Get retrieves a story by id. Returns a NotFoundError when no story
	// exists with the given id, or a StorageError on infrastructure failure.
	// NotFound is a normal outcome of lookups and is never conflated with a
	// storage fault.
	Get(ctx context.Context, id string) (*aggregates.Story, error)
}

// GraphPort registers stories in the knowledge graph. No adapter implements
// it yet; entity and relationship methods will be added as graph
// construction lands. Failures surface as GraphError.
type GraphPort interface {
	SaveStoryNode(ctx context.Context, storyID string, triads []valueobjects.TriadPlacement, timestamp time.Time) error
}

// EntityExtraction holds structured entities and themes extracted from a
// story text. The shape will firm up as extraction needs become clear.
type EntityExtraction struct {
	Entities []map[string]any `json:"entities"`
	Themes   []map[string]any `json:"themes"`
}

// ExtractionPort analyzes story text with a language model. No adapter
// implements it yet. Failures surface as ExtractionError; an unparseable
// model response is also an ExtractionError.
type ExtractionPort interface {
	ExtractEntities(ctx context.Context, storyText string) (EntityExtraction, error)
}

// StorySubmittedEvent announces a successfully persisted submission to
// downstream analysis pipelines.
type StorySubmittedEvent struct {
	StoryID    string    `json:"story_id"`
	TriadCount int       `json:"triad_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventPublisher emits integration events after persistence. Publishing is
// best-effort from the workflow's point of view; a failed publish never
// fails a stored submission.
type EventPublisher interface {
	PublishStorySubmitted(ctx context.Context, event StorySubmittedEvent) error
}
