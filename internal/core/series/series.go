// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package series groups books into ordered collections.
//
// Deleting a series keeps its books; their membership is cleared by the
// catalog.book foreign key (ON DELETE SET NULL).
package series

import "time"

// Series is a named, ordered set of books.
type Series struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	BookCount   int       `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input is the create/update payload for a series.
type Input struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"
)
