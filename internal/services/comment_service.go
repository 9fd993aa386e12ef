package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/repositories"
	"go.uber.org/zap"
)

const maxCommentLength = 500

// CommentRepository is the interface that wraps methods for Comment table data access
type CommentRepository interface {
	// GetByID retrieves a comment with its author.
	//
	// If no comment with such ID exists, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// Create inserts a new comment and sets its generated ID.
	Create(ctx context.Context, comment *models.Comment) error
	// Update writes the comment text and update timestamp.
	Update(ctx context.Context, comment *models.Comment) error
	// Delete removes a comment.
	Delete(ctx context.Context, id int) error
}

// CampgroundSharedRepository is the interface that wraps the campground access
// shared with the comment service
type CampgroundSharedRepository interface {
	// Exists checks if a campground exists with the given ID.
	Exists(ctx context.Context, id int) (bool, error)
}

// commentService implements comment business logic
type commentService struct {
	commentRepo    CommentRepository
	campgroundRepo CampgroundSharedRepository
	logger         *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo CommentRepository,
	campgroundRepo CampgroundSharedRepository,
	logger *zap.Logger,
) *commentService {
	return &commentService{
		commentRepo:    commentRepo,
		campgroundRepo: campgroundRepo,
		logger:         logger,
	}
}

// validateCommentText trims the text and checks the length rules,
// returning the first failure only
func validateCommentText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Message: "Comment text is required"}
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLength {
		return "", &ValidationError{Message: "Comment must be less than 500 characters"}
	}
	return trimmed, nil
}

// Create validates the request, checks the referenced campground exists and
// persists a new comment owned by the caller
func (s *commentService) Create(ctx context.Context, userID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if req.CampgroundID <= 0 {
		return nil, &ValidationError{Message: "Invalid campground ID"}
	}

	text, err := validateCommentText(req.Text)
	if err != nil {
		return nil, err
	}

	exists, err := s.campgroundRepo.Exists(ctx, req.CampgroundID)
	if err != nil {
		s.logger.Error("failed to check campground existence", zap.Int("campground_id", req.CampgroundID), zap.Error(err))
		return nil, fmt.Errorf("failed to check campground existence: %w", err)
	}
	if !exists {
		return nil, &NotFoundError{Resource: "Campground"}
	}

	now := time.Now()
	comment := &models.Comment{
		Text:         text,
		CampgroundID: req.CampgroundID,
		AuthorID:     &userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("failed to create comment", zap.Error(err))
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetByID returns a comment with its author
func (s *commentService) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "Comment"}
	}
	if err != nil {
		s.logger.Error("failed to get comment", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// Update validates the new text and applies it to a comment owned by the caller
func (s *commentService) Update(ctx context.Context, userID string, id int, req *models.UpdateCommentRequest) (*models.Comment, error) {
	text, err := validateCommentText(req.Text)
	if err != nil {
		return nil, err
	}

	existing, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "Comment"}
	}
	if err != nil {
		s.logger.Error("failed to get comment", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if existing.AuthorID == nil || *existing.AuthorID != userID {
		return nil, ErrForbidden
	}

	existing.Text = text
	existing.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, existing); err != nil {
		s.logger.Error("failed to update comment", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return existing, nil
}

// Delete removes a comment owned by the caller
func (s *commentService) Delete(ctx context.Context, userID string, id int) error {
	existing, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: "Comment"}
	}
	if err != nil {
		s.logger.Error("failed to get comment", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if existing.AuthorID == nil || *existing.AuthorID != userID {
		return ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete comment", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
