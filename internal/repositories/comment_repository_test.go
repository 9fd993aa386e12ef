package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yelpcamp/backend/internal/models"
)

// setupCommentTestRepository creates a comment repository with a mock database
func setupCommentTestRepository(t *testing.T) (*commentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCommentRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewCommentRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewCommentRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// commentColumns matches the SELECT list of GetByID and ListByCampground
var commentColumns = []string{
	"id", "text", "campground_id", "author_id", "created_at", "updated_at",
	"u.id", "u.username",
}

func TestCommentRepository_GetByID(t *testing.T) {
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(commentColumns).
			AddRow(3, "Great views!", 1, "user-1", now, now, "user-1", "johncamper")
		mock.ExpectQuery(`SELECT (.+) FROM comments c`).
			WithArgs(3).
			WillReturnRows(rows)

		comment, err := repo.GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, 3, comment.ID)
		assert.Equal(t, "Great views!", comment.Text)
		assert.Equal(t, 1, comment.CampgroundID)
		require.NotNil(t, comment.Author)
		assert.Equal(t, "johncamper", comment.Author.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("orphaned comment has no author", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(commentColumns).
			AddRow(4, "Nice spot", 1, nil, now, now, nil, nil)
		mock.ExpectQuery(`SELECT (.+) FROM comments c`).
			WithArgs(4).
			WillReturnRows(rows)

		comment, err := repo.GetByID(context.Background(), 4)

		require.NoError(t, err)
		assert.Nil(t, comment.AuthorID)
		assert.Nil(t, comment.Author)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM comments c`).
			WithArgs(999).
			WillReturnError(sql.ErrNoRows)

		comment, err := repo.GetByID(context.Background(), 999)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, comment)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_ListByCampground(t *testing.T) {
	now := time.Now()

	t.Run("returns comments with authors", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(commentColumns).
			AddRow(2, "Second comment", 1, "user-2", now, now, "user-2", "janehiker").
			AddRow(1, "First comment", 1, "user-1", now.Add(-time.Hour), now.Add(-time.Hour), "user-1", "johncamper")
		mock.ExpectQuery(`SELECT (.+) FROM comments c`).
			WithArgs(1).
			WillReturnRows(rows)

		comments, err := repo.ListByCampground(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, 2, comments[0].ID)
		assert.Equal(t, "janehiker", comments[0].Author.Username)
		assert.Equal(t, 1, comments[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no comments returns empty slice", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(commentColumns)
		mock.ExpectQuery(`SELECT (.+) FROM comments c`).
			WithArgs(1).
			WillReturnRows(rows)

		comments, err := repo.ListByCampground(context.Background(), 1)

		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM comments c`).
			WithArgs(1).
			WillReturnError(errors.New("connection refused"))

		comments, err := repo.ListByCampground(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, comments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_Create(t *testing.T) {
	now := time.Now()
	authorID := "user-1"

	tests := []struct {
		name          string
		comment       *models.Comment
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			comment: &models.Comment{
				Text:         "Great views!",
				CampgroundID: 1,
				AuthorID:     &authorID,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO comments`).
					WithArgs("Great views!", 1, &authorID, now, now).
					WillReturnResult(sqlmock.NewResult(9, 1))
			},
			expectedID: 9,
		},
		{
			name: "database error on insert",
			comment: &models.Comment{
				Text:         "Great views!",
				CampgroundID: 1,
				AuthorID:     &authorID,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO comments`).
					WithArgs("Great views!", 1, &authorID, now, now).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "error getting last insert id",
			comment: &models.Comment{
				Text:         "Great views!",
				CampgroundID: 1,
				AuthorID:     &authorID,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO comments`).
					WithArgs("Great views!", 1, &authorID, now, now).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCommentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.comment)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.comment.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentRepository_Update(t *testing.T) {
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE comments`).
			WithArgs("Updated text", now, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &models.Comment{ID: 3, Text: "Updated text", UpdatedAt: now})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE comments`).
			WithArgs("Updated text", now, 3).
			WillReturnError(errors.New("database error"))

		err := repo.Update(context.Background(), &models.Comment{ID: 3, Text: "Updated text", UpdatedAt: now})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupCommentTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM comments`).
			WithArgs(3).
			WillReturnError(errors.New("database error"))

		err := repo.Delete(context.Background(), 3)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
