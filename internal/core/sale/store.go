// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import "context"

// Repository defines the persistence operations for sales.
type Repository interface {
	// ListViews returns joined rows ordered by id; aggregation happens in memory.
	ListViews(context context.Context, f ViewFilter) ([]View, error)
	GetView(context context.Context, id int) (*View, error)
	GetSale(context context.Context, id int) (*Sale, error)
	CreateSale(context context.Context, s *Sale) error
	UpdateSale(context context.Context, s *Sale) error
	SetPaid(context context.Context, id int, paid bool) error
	DeleteSale(context context.Context, id int) error
}
