package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error envelope with the given category and message
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, category, message string) {
	h.RespondJSON(w, status, models.ErrorResponse{Error: category, Message: message})
}

// RespondServiceError maps a service-layer error to the matching error envelope
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		h.RespondError(w, http.StatusBadRequest, "Validation Error", validationErr.Message)
	case errors.As(err, &notFoundErr):
		h.RespondError(w, http.StatusNotFound, "Not Found", notFoundErr.Error())
	case errors.Is(err, services.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, "Forbidden", "You don't have permission to do that")
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Incorrect username or password")
	default:
		h.Logger.Error("unexpected error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
	}
}
