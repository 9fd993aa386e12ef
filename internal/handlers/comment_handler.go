package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yelpcamp/backend/internal/auth/middleware"
	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for comment business logic
type CommentService interface {
	// Create validates the request, checks the referenced campground exists and
	// persists a new comment owned by the caller.
	//
	// If the referenced campground does not exist, a not-found error will be returned together with "nil" value.
	Create(ctx context.Context, userID string, req *models.CreateCommentRequest) (*models.Comment, error)
	// GetByID returns a comment with its author.
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// Update validates the new text and applies it to a comment owned by the caller.
	//
	// If the caller does not own the comment, a forbidden error will be returned together with "nil" value.
	Update(ctx context.Context, userID string, id int, req *models.UpdateCommentRequest) (*models.Comment, error)
	// Delete removes a comment owned by the caller.
	//
	// Please reference Update method for the ownership error behavior.
	Delete(ctx context.Context, userID string, id int) error
}

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	BaseHandler
	service CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all comment handler routes
func (h *CommentHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/comments", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// parseCommentID parses the id URL parameter as a positive integer
func parseCommentID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Create handles POST /api/comments
// @Summary Create comment
// @Description Create a new comment on a campground. Requires authentication.
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCommentRequest true "Comment fields"
// @Success 201 {object} models.Comment "Created comment"
// @Failure 400 {object} models.ErrorResponse "Invalid body or validation error"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "Campground not found"
// @Router /comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	comment, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, comment)
}

// GetByID handles GET /api/comments/{id}
// @Summary Get comment
// @Description Get a single comment with its author. Requires authentication.
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment "Comment with author"
// @Failure 400 {object} models.ErrorResponse "Invalid comment ID"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 404 {object} models.ErrorResponse "Comment not found"
// @Router /comments/{id} [get]
func (h *CommentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseCommentID(r)
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Comment ID must be a valid number")
		return
	}

	comment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, comment)
}

// Update handles PUT /api/comments/{id}
// @Summary Update comment
// @Description Update the text of a comment. Requires authentication and ownership.
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Param request body models.UpdateCommentRequest true "New comment text"
// @Success 200 {object} models.Comment "Updated comment"
// @Failure 400 {object} models.ErrorResponse "Invalid body or validation error"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 403 {object} models.ErrorResponse "Caller does not own the comment"
// @Failure 404 {object} models.ErrorResponse "Comment not found"
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	id, idOK := parseCommentID(r)
	if !idOK {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Comment ID must be a valid number")
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	comment, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/{id}
// @Summary Delete comment
// @Description Delete a comment. Requires authentication and ownership.
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} models.SuccessResponse "Comment deleted"
// @Failure 400 {object} models.ErrorResponse "Invalid comment ID"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 403 {object} models.ErrorResponse "Caller does not own the comment"
// @Failure 404 {object} models.ErrorResponse "Comment not found"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	id, idOK := parseCommentID(r)
	if !idOK {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Comment ID must be a valid number")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Comment deleted"})
}
