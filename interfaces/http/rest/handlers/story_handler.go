package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sensemaker-backend/application/services"
	"sensemaker-backend/pkg/common"
	pkgerrors "sensemaker-backend/pkg/errors"
)

// maxBodyBytes bounds submission payloads; a maximal valid story is far
// below this.
const maxBodyBytes = 64 << 10

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	service *services.SubmissionService
	logger  *zap.Logger
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(service *services.SubmissionService, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		service: service,
		logger:  logger,
	}
}

// StoryResponse is the read-side view of a persisted story
type StoryResponse struct {
	StoryID string `json:"story_id"`
	StoryDocumentView
}

// StoryDocumentView mirrors the persisted document shape on the wire
type StoryDocumentView struct {
	StoryText        string      `json:"story_text"`
	Triads           interface{} `json:"triads"`
	Metadata         interface{} `json:"metadata"`
	Timestamp        string      `json:"timestamp"`
	ProcessingStatus string      `json:"processing_status"`
}

// SubmitStory handles POST /api/v1/stories
func (h *StoryHandler) SubmitStory(w http.ResponseWriter, r *http.Request) {
	var req services.SubmissionRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, string(pkgerrors.ErrorTypeRequestValidation),
			"Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.respondError(w, r, "Failed to submit story", err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// GetStory handles GET /api/v1/stories/{storyID}
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	story, err := h.service.GetStory(r.Context(), storyID)
	if err != nil {
		h.respondError(w, r, "Failed to retrieve story", err)
		return
	}

	doc := story.ToDocument()
	common.RespondJSON(w, http.StatusOK, StoryResponse{
		StoryID: story.ID(),
		StoryDocumentView: StoryDocumentView{
			StoryText:        doc.StoryText,
			Triads:           doc.Triads,
			Metadata:         doc.Metadata,
			Timestamp:        doc.Timestamp,
			ProcessingStatus: doc.ProcessingStatus,
		},
	})
}

// respondError maps application errors onto HTTP responses. Validation
// failures return their structured violations; infrastructure faults return
// a generic message without internal detail.
func (h *StoryHandler) respondError(w http.ResponseWriter, r *http.Request, genericMsg string, err error) {
	appErr := pkgerrors.GetAppError(err)
	if appErr == nil {
		h.logger.Error("unexpected error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		common.RespondError(w, http.StatusInternalServerError,
			string(pkgerrors.ErrorTypeInternal), genericMsg)
		return
	}

	switch appErr.Type {
	case pkgerrors.ErrorTypeRequestValidation, pkgerrors.ErrorTypeDomainValidation:
		common.RespondErrorWithDetails(w, appErr.HTTPStatus, string(appErr.Type),
			appErr.Message, appErr.Violations)
	case pkgerrors.ErrorTypeNotFound:
		common.RespondError(w, http.StatusNotFound, string(appErr.Type), appErr.Message)
	default:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("errorType", string(appErr.Type)),
			zap.Error(err),
		)
		common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), genericMsg)
	}
}
