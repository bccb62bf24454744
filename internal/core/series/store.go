// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import "context"

type Repository interface {
	ListSeries(context context.Context) ([]*Series, error)
	GetSeries(context context.Context, id int) (*Series, error)
	CreateSeries(context context.Context, s *Series) error
	UpdateSeries(context context.Context, s *Series) error
	DeleteSeries(context context.Context, id int) error
}
