// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import "context"

type Repository interface {
	// MarkGroupPaid flips every unpaid sale whose book's author set equals
	// authorIDs and records a batch, atomically. Zero matches write nothing.
	MarkGroupPaid(context context.Context, authorIDs []int, paidBy string) (Result, error)
	ListBatches(context context.Context, limit, offset int) ([]*Batch, int, error)
}
