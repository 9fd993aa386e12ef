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

// CampgroundService is the interface that wraps methods for campground business logic
type CampgroundService interface {
	// List returns one page of campgrounds matching the raw query parameters,
	// plus pagination metadata.
	//
	// "search" parameter is an optional free-text filter.
	// "pageStr" and "limitStr" parameters are the raw query values, coerced and
	// validated by the service (page >= 1, limit in [1,50]).
	//
	// If wrong parameters will be used or some error will occur during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context, search, pageStr, limitStr string) (*models.CampgroundList, error)
	// GetByID returns a campground with its author and all its comments.
	//
	// If no campground with such ID exists, a not-found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.CampgroundDetail, error)
	// Create validates the request and persists a new campground owned by the caller.
	Create(ctx context.Context, userID string, req *models.CreateCampgroundRequest) (*models.Campground, error)
	// Update applies a validated partial update to a campground owned by the caller.
	//
	// If the caller does not own the campground, a forbidden error will be returned together with "nil" value.
	Update(ctx context.Context, userID string, id int, req *models.UpdateCampgroundRequest) (*models.Campground, error)
	// Delete removes a campground owned by the caller.
	//
	// Please reference Update method for the ownership error behavior.
	Delete(ctx context.Context, userID string, id int) error
}

// CampgroundHandler handles campground-related HTTP requests
type CampgroundHandler struct {
	BaseHandler
	service CampgroundService
}

// NewCampgroundHandler creates a new campground handler
func NewCampgroundHandler(service CampgroundService, logger *zap.Logger) *CampgroundHandler {
	return &CampgroundHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all campground handler routes
func (h *CampgroundHandler) RegisterRoutes(r chi.Router, requireAuth, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/campgrounds", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/", h.List)
			r.Get("/{id}", h.GetByID)
		})
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// parseCampgroundID parses the id URL parameter as a positive integer
func parseCampgroundID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List handles GET /api/campgrounds
// @Summary List campgrounds
// @Description Get a page of campgrounds with optional case-insensitive search over name, description and location.
// @Tags campgrounds
// @Produce json
// @Param search query string false "Free-text search term"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size, 1-50 (default 12)"
// @Success 200 {object} models.CampgroundList "Page of campgrounds with pagination metadata"
// @Failure 400 {object} models.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /campgrounds [get]
func (h *CampgroundHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	list, err := h.service.List(r.Context(), query.Get("search"), query.Get("page"), query.Get("limit"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, list)
}

// GetByID handles GET /api/campgrounds/{id}
// @Summary Get campground
// @Description Get a single campground with its author and all its comments.
// @Tags campgrounds
// @Produce json
// @Param id path int true "Campground ID"
// @Success 200 {object} models.CampgroundDetail "Campground with author and comments"
// @Failure 400 {object} models.ErrorResponse "Invalid campground ID"
// @Failure 404 {object} models.ErrorResponse "Campground not found"
// @Router /campgrounds/{id} [get]
func (h *CampgroundHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseCampgroundID(r)
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Campground ID must be a valid number")
		return
	}

	campground, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, campground)
}

// Create handles POST /api/campgrounds
// @Summary Create campground
// @Description Create a new campground owned by the authenticated user. Requires authentication.
// @Tags campgrounds
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCampgroundRequest true "Campground fields"
// @Success 201 {object} models.Campground "Created campground"
// @Failure 400 {object} models.ErrorResponse "Invalid body or validation error"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Router /campgrounds [post]
func (h *CampgroundHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	var req models.CreateCampgroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	campground, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, campground)
}

// Update handles PUT /api/campgrounds/{id}
// @Summary Update campground
// @Description Apply a partial update to a campground. Requires authentication and ownership.
// @Tags campgrounds
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Campground ID"
// @Param request body models.UpdateCampgroundRequest true "Fields to update"
// @Success 200 {object} models.Campground "Updated campground"
// @Failure 400 {object} models.ErrorResponse "Invalid body or validation error"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 403 {object} models.ErrorResponse "Caller does not own the campground"
// @Failure 404 {object} models.ErrorResponse "Campground not found"
// @Router /campgrounds/{id} [put]
func (h *CampgroundHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	id, idOK := parseCampgroundID(r)
	if !idOK {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Campground ID must be a valid number")
		return
	}

	var req models.UpdateCampgroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	campground, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, campground)
}

// Delete handles DELETE /api/campgrounds/{id}
// @Summary Delete campground
// @Description Delete a campground and (via storage cascade) all its comments. Requires authentication and ownership.
// @Tags campgrounds
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Campground ID"
// @Success 200 {object} models.SuccessResponse "Campground deleted"
// @Failure 400 {object} models.ErrorResponse "Invalid campground ID"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 403 {object} models.ErrorResponse "Caller does not own the campground"
// @Failure 404 {object} models.ErrorResponse "Campground not found"
// @Router /campgrounds/{id} [delete]
func (h *CampgroundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "Unauthorized", "You must be logged in")
		return
	}

	id, idOK := parseCampgroundID(r)
	if !idOK {
		h.RespondError(w, http.StatusBadRequest, "Bad Request", "Campground ID must be a valid number")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Campground deleted"})
}
