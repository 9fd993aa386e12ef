package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yelpcamp/backend/internal/models"
)

// campgroundRepository implements data access for the campgrounds table
type campgroundRepository struct {
	db *sql.DB
}

// NewCampgroundRepository creates a new campground repository
func NewCampgroundRepository(db *sql.DB) *campgroundRepository {
	return &campgroundRepository{db: db}
}

// searchPattern builds the LIKE pattern for a case-insensitive substring match
func searchPattern(search string) string {
	return "%" + search + "%"
}

// Count returns the number of campgrounds matching the search term,
// independent of any page window
func (r *campgroundRepository) Count(ctx context.Context, search string) (int, error) {
	query := `SELECT COUNT(*) FROM campgrounds`
	args := []any{}
	if search != "" {
		query += ` WHERE LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)`
		pattern := searchPattern(search)
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count campgrounds: %w", err)
	}

	return total, nil
}

// List retrieves a page of campgrounds ordered by creation time descending,
// each joined with its author
func (r *campgroundRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Campground, error) {
	query := `
		SELECT c.id, c.name, c.price, c.image, c.description, c.location, c.author_id,
		       c.created_at, c.updated_at, u.id, u.username
		FROM campgrounds c
		LEFT JOIN users u ON c.author_id = u.id
	`
	args := []any{}
	if search != "" {
		query += ` WHERE LOWER(c.name) LIKE LOWER(?) OR LOWER(c.description) LIKE LOWER(?) OR LOWER(c.location) LIKE LOWER(?)`
		pattern := searchPattern(search)
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY c.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list campgrounds: %w", err)
	}
	defer rows.Close()

	campgrounds := []models.Campground{}
	for rows.Next() {
		var c models.Campground
		var authorID, authorUsername *string
		err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Image, &c.Description, &c.Location,
			&c.AuthorID, &c.CreatedAt, &c.UpdatedAt, &authorID, &authorUsername)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campground row: %w", err)
		}
		if authorID != nil && authorUsername != nil {
			c.Author = &models.Author{ID: *authorID, Username: *authorUsername}
		}
		campgrounds = append(campgrounds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campground rows: %w", err)
	}

	return campgrounds, nil
}

// GetByID retrieves a campground with its author
func (r *campgroundRepository) GetByID(ctx context.Context, id int) (*models.Campground, error) {
	query := `
		SELECT c.id, c.name, c.price, c.image, c.description, c.location, c.author_id,
		       c.created_at, c.updated_at, u.id, u.username
		FROM campgrounds c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.id = ?
	`

	var c models.Campground
	var authorID, authorUsername *string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Price, &c.Image, &c.Description, &c.Location,
		&c.AuthorID, &c.CreatedAt, &c.UpdatedAt, &authorID, &authorUsername)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campground by id: %w", err)
	}

	if authorID != nil && authorUsername != nil {
		c.Author = &models.Author{ID: *authorID, Username: *authorUsername}
	}

	return &c, nil
}

// Exists checks if a campground exists with the given ID
func (r *campgroundRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM campgrounds WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check campground existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new campground and sets its generated ID
func (r *campgroundRepository) Create(ctx context.Context, c *models.Campground) error {
	query := `
		INSERT INTO campgrounds (name, price, image, description, location, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Price, c.Image, c.Description, c.Location, c.AuthorID,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create campground: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	c.ID = int(id)
	return nil
}

// Update writes all mutable campground columns
func (r *campgroundRepository) Update(ctx context.Context, c *models.Campground) error {
	query := `
		UPDATE campgrounds
		SET name = ?, price = ?, image = ?, description = ?, location = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.Price, c.Image, c.Description, c.Location, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update campground: %w", err)
	}

	return nil
}

// Delete removes a campground. Its comments are removed by the
// ON DELETE CASCADE referential action.
func (r *campgroundRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM campgrounds WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete campground: %w", err)
	}

	return nil
}
