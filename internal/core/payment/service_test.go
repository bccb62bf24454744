// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/payment"
	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/metrics"
)

// fakeLedger keeps sale views in memory and serves both collaborators.
type fakeLedger struct {
	views   []sale.View
	batches []*payment.Batch
}

func (ledger *fakeLedger) ListUnpaid(_ context.Context) ([]sale.View, error) {
	var unpaid []sale.View
	for _, v := range ledger.views {
		if !v.Paid {
			unpaid = append(unpaid, v)
		}
	}
	return unpaid, nil
}

func (ledger *fakeLedger) MarkGroupPaid(_ context.Context, authorIDs []int, paidBy string) (payment.Result, error) {
	result := payment.Result{Amount: decimal.Zero}
	for i := range ledger.views {
		v := &ledger.views[i]
		if v.Paid || !slices.Equal(v.AuthorIDs(), authorIDs) {
			continue
		}
		v.Paid = true
		result.UpdatedCount++
		result.Amount = result.Amount.Add(v.AuthorRoyalty)
	}
	if result.UpdatedCount == 0 {
		return result, nil
	}

	id := len(ledger.batches) + 1
	ledger.batches = append(ledger.batches, &payment.Batch{
		ID: id, AuthorIDs: authorIDs, SaleCount: result.UpdatedCount, Amount: result.Amount, PaidBy: paidBy,
	})
	result.BatchID = &id
	return result, nil
}

func (ledger *fakeLedger) ListBatches(_ context.Context, limit, offset int) ([]*payment.Batch, int, error) {
	return ledger.batches, len(ledger.batches), nil
}

func newService() (*payment.Service, *fakeLedger) {
	ledger := &fakeLedger{views: []sale.View{
		view(1, "10.00", false, ann),
		view(2, "5.00", false, bo, ann),
		view(3, "7.25", false, ann, bo),
		view(4, "2.00", false, bo),
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return payment.NewService(ledger, ledger, logger), ledger
}

/*
TestService_MarkGroupPaid pays only the exact author set and is idempotent.
*/
func TestService_MarkGroupPaid(t *testing.T) {
	service, ledger := newService()
	ctx := context.Background()
	beforeCount := testutil.ToFloat64(metrics.SalesMarkedPaid)
	beforeAmount := testutil.ToFloat64(metrics.RoyaltyPaid)

	result, err := service.MarkGroupPaid(ctx, []int{2, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, 2, result.UpdatedCount)
	assert.True(t, d("12.25").Equal(result.Amount))
	require.NotNil(t, result.BatchID)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.SalesMarkedPaid)-beforeCount, 0.0001)
	assert.InDelta(t, 12.25, testutil.ToFloat64(metrics.RoyaltyPaid)-beforeAmount, 0.0001)

	// Solo groups stay unpaid.
	assert.False(t, ledger.views[0].Paid)
	assert.False(t, ledger.views[3].Paid)

	again, err := service.MarkGroupPaid(ctx, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, again.UpdatedCount)
	assert.Nil(t, again.BatchID)
	assert.Len(t, ledger.batches, 1)
}

func TestService_MarkGroupPaid_Validation(t *testing.T) {
	service, _ := newService()

	tests := []struct {
		name      string
		authorIDs []int
	}{
		{"empty", nil},
		{"non-positive", []int{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.MarkGroupPaid(context.Background(), tt.authorIDs)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestService_Groups reflects payments immediately.
*/
func TestService_Groups(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	groups, err := service.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	_, err = service.MarkGroupPaid(ctx, []int{1})
	require.NoError(t, err)

	groups, err = service.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	for _, group := range groups {
		assert.NotEqual(t, []int{1}, group.AuthorIDs)
	}
}
