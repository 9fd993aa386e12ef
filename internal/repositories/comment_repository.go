package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yelpcamp/backend/internal/models"
)

// commentRepository implements data access for the comments table
type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

// GetByID retrieves a comment with its author
func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `
		SELECT c.id, c.text, c.campground_id, c.author_id, c.created_at, c.updated_at,
		       u.id, u.username
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.id = ?
	`

	var comment models.Comment
	var authorID, authorUsername *string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Text, &comment.CampgroundID, &comment.AuthorID,
		&comment.CreatedAt, &comment.UpdatedAt, &authorID, &authorUsername)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	if authorID != nil && authorUsername != nil {
		comment.Author = &models.Author{ID: *authorID, Username: *authorUsername}
	}

	return &comment, nil
}

// ListByCampground retrieves all comments of a campground ordered by
// creation time descending, each joined with its author
func (r *commentRepository) ListByCampground(ctx context.Context, campgroundID int) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.text, c.campground_id, c.author_id, c.created_at, c.updated_at,
		       u.id, u.username
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.campground_id = ?
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		var authorID, authorUsername *string
		err := rows.Scan(&comment.ID, &comment.Text, &comment.CampgroundID, &comment.AuthorID,
			&comment.CreatedAt, &comment.UpdatedAt, &authorID, &authorUsername)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		if authorID != nil && authorUsername != nil {
			comment.Author = &models.Author{ID: *authorID, Username: *authorUsername}
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}

	return comments, nil
}

// Create inserts a new comment and sets its generated ID
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (text, campground_id, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		comment.Text, comment.CampgroundID, comment.AuthorID,
		comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// Update writes the comment text and update timestamp
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `UPDATE comments SET text = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, comment.Text, comment.UpdatedAt, comment.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

// Delete removes a comment
func (r *commentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM comments WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
