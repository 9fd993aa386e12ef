package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 50

	maxNameLength        = 100
	maxDescriptionLength = 5000
	maxLocationLength    = 200
)

// CampgroundRepository is the interface that wraps methods for Campground table data access
type CampgroundRepository interface {
	// Count returns the number of campgrounds matching the search term.
	//
	// "search" parameter is matched case-insensitively as a substring against
	// name, description and location; an empty string matches every row.
	//
	// If some error occurs during counting, the error will be returned together with zero.
	Count(ctx context.Context, search string) (int, error)
	// List retrieves one page of campgrounds ordered by creation time descending,
	// each joined with its author.
	//
	// Please reference Count method for the "search" parameter semantics.
	List(ctx context.Context, search string, limit, offset int) ([]models.Campground, error)
	// GetByID retrieves a campground with its author.
	//
	// If no campground with such ID exists, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Campground, error)
	// Create inserts a new campground and sets its generated ID.
	Create(ctx context.Context, campground *models.Campground) error
	// Update writes all mutable campground columns.
	Update(ctx context.Context, campground *models.Campground) error
	// Delete removes a campground; its comments cascade at the storage layer.
	Delete(ctx context.Context, id int) error
}

// CampgroundCommentRepository is the interface that wraps the comment access
// needed to assemble a campground detail response
type CampgroundCommentRepository interface {
	// ListByCampground retrieves all comments of a campground ordered by
	// creation time descending, each joined with its author.
	ListByCampground(ctx context.Context, campgroundID int) ([]models.Comment, error)
}

// campgroundService implements campground business logic
type campgroundService struct {
	campgroundRepo CampgroundRepository
	commentRepo    CampgroundCommentRepository
	logger         *zap.Logger
}

// NewCampgroundService creates a new campground service
func NewCampgroundService(
	campgroundRepo CampgroundRepository,
	commentRepo CampgroundCommentRepository,
	logger *zap.Logger,
) *campgroundService {
	return &campgroundService{
		campgroundRepo: campgroundRepo,
		commentRepo:    commentRepo,
		logger:         logger,
	}
}

// parseListQuery coerces the raw query parameters into a validated ListQuery
func parseListQuery(search, pageStr, limitStr string) (*models.ListQuery, error) {
	q := &models.ListQuery{
		Search: strings.TrimSpace(search),
		Page:   defaultPage,
		Limit:  defaultLimit,
	}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, &ValidationError{Message: "Page must be a positive integer"}
		}
		q.Page = page
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxLimit {
			return nil, &ValidationError{Message: fmt.Sprintf("Limit must be between 1 and %d", maxLimit)}
		}
		q.Limit = limit
	}

	return q, nil
}

// validateImageURL checks that the value parses as a well-formed absolute URL
func validateImageURL(image string) bool {
	u, err := url.ParseRequestURI(image)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// validateCreateCampground trims the request in place and checks every rule,
// returning the first failure only
func validateCreateCampground(req *models.CreateCampgroundRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return &ValidationError{Message: "Campground name is required"}
	}
	if utf8.RuneCountInString(req.Name) > maxNameLength {
		return &ValidationError{Message: "Name must be less than 100 characters"}
	}

	req.Price = strings.TrimSpace(req.Price)
	if req.Price == "" {
		return &ValidationError{Message: "Price is required"}
	}

	req.Image = strings.TrimSpace(req.Image)
	if !validateImageURL(req.Image) {
		return &ValidationError{Message: "Must be a valid URL"}
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return &ValidationError{Message: "Description is required"}
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		return &ValidationError{Message: "Description must be less than 5000 characters"}
	}

	if req.Location != nil {
		trimmed := strings.TrimSpace(*req.Location)
		req.Location = &trimmed
		if utf8.RuneCountInString(trimmed) > maxLocationLength {
			return &ValidationError{Message: "Location must be less than 200 characters"}
		}
	}

	return nil
}

// validateUpdateCampground applies the create rules to every field present
// in the partial request, trimming in place
func validateUpdateCampground(req *models.UpdateCampgroundRequest) error {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
		if trimmed == "" {
			return &ValidationError{Message: "Campground name is required"}
		}
		if utf8.RuneCountInString(trimmed) > maxNameLength {
			return &ValidationError{Message: "Name must be less than 100 characters"}
		}
	}

	if req.Price != nil {
		trimmed := strings.TrimSpace(*req.Price)
		req.Price = &trimmed
		if trimmed == "" {
			return &ValidationError{Message: "Price is required"}
		}
	}

	if req.Image != nil {
		trimmed := strings.TrimSpace(*req.Image)
		req.Image = &trimmed
		if !validateImageURL(trimmed) {
			return &ValidationError{Message: "Must be a valid URL"}
		}
	}

	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		req.Description = &trimmed
		if trimmed == "" {
			return &ValidationError{Message: "Description is required"}
		}
		if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
			return &ValidationError{Message: "Description must be less than 5000 characters"}
		}
	}

	if req.Location != nil {
		trimmed := strings.TrimSpace(*req.Location)
		req.Location = &trimmed
		if utf8.RuneCountInString(trimmed) > maxLocationLength {
			return &ValidationError{Message: "Location must be less than 200 characters"}
		}
	}

	return nil
}

// List returns one page of campgrounds matching the raw query parameters,
// plus pagination metadata
func (s *campgroundService) List(ctx context.Context, search, pageStr, limitStr string) (*models.CampgroundList, error) {
	q, err := parseListQuery(search, pageStr, limitStr)
	if err != nil {
		return nil, err
	}

	total, err := s.campgroundRepo.Count(ctx, q.Search)
	if err != nil {
		s.logger.Error("failed to count campgrounds", zap.Error(err))
		return nil, fmt.Errorf("failed to count campgrounds: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	campgrounds, err := s.campgroundRepo.List(ctx, q.Search, q.Limit, offset)
	if err != nil {
		s.logger.Error("failed to list campgrounds", zap.Error(err))
		return nil, fmt.Errorf("failed to list campgrounds: %w", err)
	}

	return &models.CampgroundList{
		Campgrounds: campgrounds,
		Pagination: models.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: (total + q.Limit - 1) / q.Limit,
			HasMore:    offset+len(campgrounds) < total,
		},
	}, nil
}

// GetByID returns a campground with its author and all its comments
func (s *campgroundService) GetByID(ctx context.Context, id int) (*models.CampgroundDetail, error) {
	campground, err := s.campgroundRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "Campground"}
	}
	if err != nil {
		s.logger.Error("failed to get campground", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get campground: %w", err)
	}

	comments, err := s.commentRepo.ListByCampground(ctx, id)
	if err != nil {
		s.logger.Error("failed to list campground comments", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to list campground comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return &models.CampgroundDetail{
		Campground: *campground,
		Author:     campground.Author,
		Comments:   comments,
	}, nil
}

// Create validates the request and persists a new campground owned by the caller
func (s *campgroundService) Create(ctx context.Context, userID string, req *models.CreateCampgroundRequest) (*models.Campground, error) {
	if err := validateCreateCampground(req); err != nil {
		return nil, err
	}

	now := time.Now()
	campground := &models.Campground{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Location:    normalizeLocation(req.Location),
		AuthorID:    &userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.campgroundRepo.Create(ctx, campground); err != nil {
		s.logger.Error("failed to create campground", zap.Error(err))
		return nil, fmt.Errorf("failed to create campground: %w", err)
	}

	return campground, nil
}

// normalizeLocation maps an absent or empty location to NULL
func normalizeLocation(location *string) *string {
	if location == nil || *location == "" {
		return nil
	}
	return location
}

// Update applies a validated partial update to a campground owned by the caller.
// Fields absent from the request are left untouched; a location provided as an
// empty string clears the stored value.
func (s *campgroundService) Update(ctx context.Context, userID string, id int, req *models.UpdateCampgroundRequest) (*models.Campground, error) {
	if err := validateUpdateCampground(req); err != nil {
		return nil, err
	}

	existing, err := s.campgroundRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "Campground"}
	}
	if err != nil {
		s.logger.Error("failed to get campground", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get campground: %w", err)
	}

	if existing.AuthorID == nil || *existing.AuthorID != userID {
		return nil, ErrForbidden
	}

	if req.Name != nil && *req.Name != "" {
		existing.Name = *req.Name
	}
	if req.Price != nil && *req.Price != "" {
		existing.Price = *req.Price
	}
	if req.Image != nil && *req.Image != "" {
		existing.Image = *req.Image
	}
	if req.Description != nil && *req.Description != "" {
		existing.Description = *req.Description
	}
	if req.Location != nil {
		existing.Location = normalizeLocation(req.Location)
	}
	existing.UpdatedAt = time.Now()

	if err := s.campgroundRepo.Update(ctx, existing); err != nil {
		s.logger.Error("failed to update campground", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update campground: %w", err)
	}

	return existing, nil
}

// Delete removes a campground owned by the caller. Its comments are removed
// by the storage layer's cascade.
func (s *campgroundService) Delete(ctx context.Context, userID string, id int) error {
	existing, err := s.campgroundRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: "Campground"}
	}
	if err != nil {
		s.logger.Error("failed to get campground", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to get campground: %w", err)
	}

	if existing.AuthorID == nil || *existing.AuthorID != userID {
		return ErrForbidden
	}

	if err := s.campgroundRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete campground", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete campground: %w", err)
	}

	return nil
}
