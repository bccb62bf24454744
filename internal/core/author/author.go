// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import "time"

// Author is a person credited on one or more books.
type Author struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the create/update payload for an author.
type Input struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // ILIKE against name
}

// Global field names for validation
const (
	FieldName = "name"
	FieldBio  = "bio"
)
