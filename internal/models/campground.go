package models

import (
	"encoding/json"
	"time"
)

// Campground represents a campground listing
type Campground struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Location    *string   `json:"location"`
	AuthorID    *string   `json:"authorId"`
	Author      *Author   `json:"author,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CampgroundDetail is the response shape for GET /campgrounds/{id}.
// Unlike the list rows, author and comments are always present: null for an
// orphaned campground, [] for one without comments.
type CampgroundDetail struct {
	Campground
	Author   *Author   `json:"author"`
	Comments []Comment `json:"comments"`
}

// CreateCampgroundRequest represents a campground creation request
type CreateCampgroundRequest struct {
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Location    *string `json:"location,omitempty"`
}

// UpdateCampgroundRequest represents a partial campground update.
// Nil fields were absent from the request body and are left untouched.
type UpdateCampgroundRequest struct {
	Name        *string `json:"name,omitempty"`
	Price       *string `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// UnmarshalJSON maps an explicit "location": null to an empty location so it
// clears the stored value, while an absent field stays nil and is left untouched.
func (r *UpdateCampgroundRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateCampgroundRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = UpdateCampgroundRequest(a)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["location"]; ok && string(raw) == "null" {
		r.Location = new(string)
	}
	return nil
}

// ListQuery holds the validated list query parameters
type ListQuery struct {
	Search string
	Page   int
	Limit  int
}

// Pagination is the metadata attached to list responses
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// CampgroundList is the response envelope for GET /campgrounds
type CampgroundList struct {
	Campgrounds []Campground `json:"campgrounds"`
	Pagination  Pagination   `json:"pagination"`
}
