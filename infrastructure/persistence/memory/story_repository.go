// Package memory provides an in-memory story repository for tests and local
// development.
package memory

import (
	"context"
	"sync"

	"sensemaker-backend/application/ports"
	"sensemaker-backend/domain/core/aggregates"
	pkgerrors "sensemaker-backend/pkg/errors"
)

// StoryRepository is an in-memory implementation of ports.StoryRepository.
// Stories are stored through their persisted representation so callers
// observe exactly what a real store would hold.
type StoryRepository struct {
	mu      sync.RWMutex
	stories map[string]aggregates.StoryDocument
}

// NewStoryRepository creates a new in-memory story repository
func NewStoryRepository() *StoryRepository {
	return &StoryRepository{
		stories: make(map[string]aggregates.StoryDocument),
	}
}

// Save persists a story as an upsert keyed by its id
func (r *StoryRepository) Save(ctx context.Context, story *aggregates.Story) (string, error) {
	if story == nil || story.ID() == "" {
		return "", pkgerrors.NewStorageError("save", pkgerrors.NewInternalError("story has no id"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stories[story.ID()] = story.ToDocument()
	return story.ID(), nil
}

// Get retrieves a story by id
func (r *StoryRepository) Get(ctx context.Context, id string) (*aggregates.Story, error) {
	r.mu.RLock()
	doc, exists := r.stories[id]
	r.mu.RUnlock()

	if !exists {
		return nil, pkgerrors.NewNotFoundError("story", id)
	}
	story, err := aggregates.ReconstructStory(id, doc)
	if err != nil {
		return nil, pkgerrors.NewStorageError("get", err)
	}
	return story, nil
}

// Document returns the raw persisted representation of a story, if present.
// Tests use this to assert on the stored shape.
func (r *StoryRepository) Document(id string) (aggregates.StoryDocument, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.stories[id]
	return doc, exists
}

// Len returns the number of stored stories
func (r *StoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.stories)
}

var _ ports.StoryRepository = (*StoryRepository)(nil)
