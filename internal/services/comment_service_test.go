package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/repositories"
	"go.uber.org/zap"
)

// mockCommentRepository is a mock implementation of CommentRepository
type mockCommentRepository struct {
	comment   *models.Comment
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	updated   *models.Comment
	deletedID int
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.comment, nil
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = comment
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

// mockCampgroundSharedRepository is a mock implementation of CampgroundSharedRepository
type mockCampgroundSharedRepository struct {
	exists    bool
	existsErr error
}

func (m *mockCampgroundSharedRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func newTestCommentService(commentRepo *mockCommentRepository, campgroundRepo *mockCampgroundSharedRepository) *commentService {
	logger, _ := zap.NewDevelopment()
	return NewCommentService(commentRepo, campgroundRepo, logger)
}

func TestNewCommentService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	commentRepo := &mockCommentRepository{}
	campgroundRepo := &mockCampgroundSharedRepository{}

	svc := NewCommentService(commentRepo, campgroundRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, commentRepo, svc.commentRepo)
	assert.Equal(t, campgroundRepo, svc.campgroundRepo)
	assert.Equal(t, logger, svc.logger)
}

func TestCommentService_Create(t *testing.T) {
	t.Run("success sets author and timestamps", func(t *testing.T) {
		commentRepo := &mockCommentRepository{}
		campgroundRepo := &mockCampgroundSharedRepository{exists: true}
		svc := newTestCommentService(commentRepo, campgroundRepo)

		before := time.Now()
		comment, err := svc.Create(context.Background(), "user-1", &models.CreateCommentRequest{
			CampgroundID: 5,
			Text:         "Great views!",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, comment.ID)
		assert.Equal(t, 5, comment.CampgroundID)
		require.NotNil(t, comment.AuthorID)
		assert.Equal(t, "user-1", *comment.AuthorID)
		assert.False(t, comment.CreatedAt.Before(before))
	})

	t.Run("trims text", func(t *testing.T) {
		commentRepo := &mockCommentRepository{}
		campgroundRepo := &mockCampgroundSharedRepository{exists: true}
		svc := newTestCommentService(commentRepo, campgroundRepo)

		comment, err := svc.Create(context.Background(), "user-1", &models.CreateCommentRequest{
			CampgroundID: 5,
			Text:         "  Great views!  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Great views!", comment.Text)
	})

	tests := []struct {
		name           string
		req            *models.CreateCommentRequest
		expectedErrMsg string
	}{
		{
			name:           "invalid campground ID zero",
			req:            &models.CreateCommentRequest{CampgroundID: 0, Text: "Great views!"},
			expectedErrMsg: "Invalid campground ID",
		},
		{
			name:           "invalid campground ID negative",
			req:            &models.CreateCommentRequest{CampgroundID: -3, Text: "Great views!"},
			expectedErrMsg: "Invalid campground ID",
		},
		{
			name:           "missing text",
			req:            &models.CreateCommentRequest{CampgroundID: 5, Text: "   "},
			expectedErrMsg: "Comment text is required",
		},
		{
			name:           "text too long",
			req:            &models.CreateCommentRequest{CampgroundID: 5, Text: strings.Repeat("a", 501)},
			expectedErrMsg: "Comment must be less than 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCommentService(&mockCommentRepository{}, &mockCampgroundSharedRepository{exists: true})

			comment, err := svc.Create(context.Background(), "user-1", tt.req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedErrMsg, validationErr.Message)
			assert.Nil(t, comment)
		})
	}

	t.Run("campground does not exist", func(t *testing.T) {
		svc := newTestCommentService(&mockCommentRepository{}, &mockCampgroundSharedRepository{exists: false})

		comment, err := svc.Create(context.Background(), "user-1", &models.CreateCommentRequest{
			CampgroundID: 999,
			Text:         "Great views!",
		})

		var notFoundErr *NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "Campground", notFoundErr.Resource)
		assert.Nil(t, comment)
	})

	t.Run("existence check error", func(t *testing.T) {
		svc := newTestCommentService(&mockCommentRepository{}, &mockCampgroundSharedRepository{existsErr: errors.New("database error")})

		comment, err := svc.Create(context.Background(), "user-1", &models.CreateCommentRequest{
			CampgroundID: 5,
			Text:         "Great views!",
		})

		assert.Error(t, err)
		assert.Nil(t, comment)
	})

	t.Run("repository error", func(t *testing.T) {
		commentRepo := &mockCommentRepository{createErr: errors.New("database error")}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{exists: true})

		comment, err := svc.Create(context.Background(), "user-1", &models.CreateCommentRequest{
			CampgroundID: 5,
			Text:         "Great views!",
		})

		assert.Error(t, err)
		assert.Nil(t, comment)
	})
}

func TestCommentService_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		commentRepo := &mockCommentRepository{
			comment: &models.Comment{ID: 3, Text: "Great views!"},
		}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, 3, comment.ID)
	})

	t.Run("not found", func(t *testing.T) {
		commentRepo := &mockCommentRepository{getErr: repositories.ErrNotFound}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.GetByID(context.Background(), 999)

		var notFoundErr *NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "Comment", notFoundErr.Resource)
		assert.Nil(t, comment)
	})
}

func TestCommentService_Update(t *testing.T) {
	existing := func() *models.Comment {
		return &models.Comment{
			ID:           3,
			Text:         "Old text",
			CampgroundID: 1,
			AuthorID:     strPtr("user-1"),
		}
	}

	t.Run("success", func(t *testing.T) {
		commentRepo := &mockCommentRepository{comment: existing()}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.Update(context.Background(), "user-1", 3, &models.UpdateCommentRequest{
			Text: "  New text  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "New text", comment.Text)
		require.NotNil(t, commentRepo.updated)
		assert.Equal(t, "New text", commentRepo.updated.Text)
	})

	t.Run("validation error before loading", func(t *testing.T) {
		commentRepo := &mockCommentRepository{comment: existing()}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.Update(context.Background(), "user-1", 3, &models.UpdateCommentRequest{Text: ""})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Comment text is required", validationErr.Message)
		assert.Nil(t, comment)
	})

	t.Run("not found", func(t *testing.T) {
		commentRepo := &mockCommentRepository{getErr: repositories.ErrNotFound}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.Update(context.Background(), "user-1", 999, &models.UpdateCommentRequest{Text: "New text"})

		var notFoundErr *NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "Comment", notFoundErr.Resource)
		assert.Nil(t, comment)
	})

	t.Run("forbidden for non-author", func(t *testing.T) {
		commentRepo := &mockCommentRepository{comment: existing()}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.Update(context.Background(), "user-2", 3, &models.UpdateCommentRequest{Text: "New text"})

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, comment)
	})

	t.Run("forbidden for authorless comment", func(t *testing.T) {
		orphan := existing()
		orphan.AuthorID = nil
		commentRepo := &mockCommentRepository{comment: orphan}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.Update(context.Background(), "user-1", 3, &models.UpdateCommentRequest{Text: "New text"})

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, comment)
	})

	t.Run("repository error", func(t *testing.T) {
		commentRepo := &mockCommentRepository{comment: existing(), updateErr: errors.New("database error")}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		comment, err := svc.Update(context.Background(), "user-1", 3, &models.UpdateCommentRequest{Text: "New text"})

		assert.Error(t, err)
		assert.Nil(t, comment)
	})
}

func TestCommentService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		commentRepo := &mockCommentRepository{
			comment: &models.Comment{ID: 3, AuthorID: strPtr("user-1")},
		}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		err := svc.Delete(context.Background(), "user-1", 3)

		require.NoError(t, err)
		assert.Equal(t, 3, commentRepo.deletedID)
	})

	t.Run("not found", func(t *testing.T) {
		commentRepo := &mockCommentRepository{getErr: repositories.ErrNotFound}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		err := svc.Delete(context.Background(), "user-1", 999)

		var notFoundErr *NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "Comment", notFoundErr.Resource)
	})

	t.Run("forbidden for non-author", func(t *testing.T) {
		commentRepo := &mockCommentRepository{
			comment: &models.Comment{ID: 3, AuthorID: strPtr("user-1")},
		}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		err := svc.Delete(context.Background(), "user-2", 3)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("repository error", func(t *testing.T) {
		commentRepo := &mockCommentRepository{
			comment:   &models.Comment{ID: 3, AuthorID: strPtr("user-1")},
			deleteErr: errors.New("database error"),
		}
		svc := newTestCommentService(commentRepo, &mockCampgroundSharedRepository{})

		err := svc.Delete(context.Background(), "user-1", 3)

		assert.Error(t, err)
	})
}
