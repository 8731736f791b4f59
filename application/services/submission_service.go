// Package services contains the application workflows. The submission
// service is pure coordination: boundary validation, identity assignment,
// aggregate construction, and delegation to the storage port. Business rules
// live in the domain layer.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sensemaker-backend/application/ports"
	"sensemaker-backend/domain/core/aggregates"
	"sensemaker-backend/domain/core/valueobjects"
	pkgerrors "sensemaker-backend/pkg/errors"
	"sensemaker-backend/pkg/utils"
)

// SubmissionMessage is the fixed confirmation returned on success.
const SubmissionMessage = "Story submitted successfully"

// TriadInput is the untrusted shape of one triad placement in a submission
type TriadInput struct {
	TriadID string  `json:"triad_id" validate:"required"`
	X       float64 `json:"x" validate:"gte=0,lte=1"`
	Y       float64 `json:"y" validate:"gte=0,lte=1"`
}

// MetadataInput is the untrusted shape of optional submission metadata
type MetadataInput struct {
	UserPseudonym *string `json:"user_pseudonym"`
	Department    *string `json:"department"`
	Role          *string `json:"role"`
	ToolContext   *string `json:"tool_context"`
}

// SubmissionRequest is the untrusted request shape for submitting a story
type SubmissionRequest struct {
	StoryText string         `json:"story_text" validate:"required,min=50,max=2000"`
	Triads    []TriadInput   `json:"triads" validate:"required,len=3,dive"`
	Metadata  *MetadataInput `json:"metadata"`
}

// Validate checks the request shape and field-level constraints at the
// boundary. Violations surface as a RequestValidationError; nothing past the
// boundary runs on failure.
func (r SubmissionRequest) Validate() error {
	return utils.ValidateStruct(r)
}

// SubmissionResult carries the confirmed story id back to the caller
type SubmissionResult struct {
	StoryID string `json:"story_id"`
	Message string `json:"message"`
}

// SubmissionService coordinates the story submission workflow
type SubmissionService struct {
	repo      ports.StoryRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewSubmissionService creates a submission service. The publisher may be
// nil when no event bus is wired.
func NewSubmissionService(
	repo ports.StoryRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit validates the request, assigns identity and timestamp, constructs
// the story aggregate, and persists it. Validation failures are
// caller-caused; a save failure is an infrastructure fault and the two are
// never conflated.
func (s *SubmissionService) Submit(ctx context.Context, req SubmissionRequest) (SubmissionResult, error) {
	if err := req.Validate(); err != nil {
		return SubmissionResult{}, err
	}

	storyID := uuid.NewString()

	// Mapping into domain values re-runs coordinate validation. Redundant
	// with the boundary check above, and kept that way: the aggregate does
	// not trust its callers.
	placements := make([]valueobjects.TriadPlacement, 0, len(req.Triads))
	for _, t := range req.Triads {
		coords, err := valueobjects.NewTriadCoordinates(t.X, t.Y)
		if err != nil {
			return SubmissionResult{}, err
		}
		placement, err := valueobjects.NewTriadPlacement(t.TriadID, coords)
		if err != nil {
			return SubmissionResult{}, err
		}
		placements = append(placements, placement)
	}

	// Absent metadata stays absent; it never becomes an empty object.
	var metadata *valueobjects.StoryMetadata
	if req.Metadata != nil {
		m := valueobjects.NewStoryMetadata(
			req.Metadata.UserPseudonym,
			req.Metadata.Department,
			req.Metadata.Role,
			req.Metadata.ToolContext,
		)
		metadata = &m
	}

	story, err := aggregates.NewStory(storyID, req.StoryText, placements, metadata, time.Time{})
	if err != nil {
		return SubmissionResult{}, err
	}

	savedID, err := s.repo.Save(ctx, story)
	if err != nil {
		return SubmissionResult{}, err
	}
	if savedID != storyID {
		return SubmissionResult{}, pkgerrors.NewStorageError("save",
			fmt.Errorf("store substituted id %q for assigned id %q", savedID, storyID))
	}

	if s.publisher != nil {
		event := ports.StorySubmittedEvent{
			StoryID:    savedID,
			TriadCount: len(story.Triads()),
			Timestamp:  story.Timestamp(),
		}
		if err := s.publisher.PublishStorySubmitted(ctx, event); err != nil {
			// The story is durably stored; a missed event only delays
			// downstream analysis.
			s.logger.Warn("failed to publish story.submitted event",
				zap.String("storyID", savedID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("story submitted",
		zap.String("storyID", savedID),
		zap.Int("triadCount", len(story.Triads())),
	)

	return SubmissionResult{StoryID: savedID, Message: SubmissionMessage}, nil
}

// GetStory retrieves a persisted story by id. Retrieval is a pass-through of
// the storage contract.
func (s *SubmissionService) GetStory(ctx context.Context, id string) (*aggregates.Story, error) {
	if id == "" {
		return nil, pkgerrors.NewRequestValidationError(
			pkgerrors.Violation{Field: "story_id", Reason: "is required"})
	}
	return s.repo.Get(ctx, id)
}
