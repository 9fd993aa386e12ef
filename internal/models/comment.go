package models

import "time"

// Comment represents a comment on a campground
type Comment struct {
	ID           int       `json:"id"`
	Text         string    `json:"text"`
	CampgroundID int       `json:"campgroundId"`
	AuthorID     *string   `json:"authorId"`
	Author       *Author   `json:"author,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateCommentRequest represents a comment creation request
type CreateCommentRequest struct {
	CampgroundID int    `json:"campgroundId"`
	Text         string `json:"text"`
}

// UpdateCommentRequest represents a comment update request
type UpdateCommentRequest struct {
	Text string `json:"text"`
}
