// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics holds the Prometheus collectors for ledger activity.

Collectors register with the default registry at init and are exposed by
the /metrics endpoint. HTTP-level metrics are not collected here.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Import row outcomes.
const (
	ImportValid     = "valid"
	ImportInvalid   = "invalid"
	ImportUnmatched = "unmatched"
)

var (
	SalesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "folio",
		Name:      "sales_created_total",
		Help:      "Sale records created, single or batch",
	})
	SalesMarkedPaid = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "folio",
		Name:      "sales_marked_paid_total",
		Help:      "Sale records flipped to paid by group payments",
	})
	RoyaltyPaid = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "folio",
		Name:      "royalty_paid_amount_total",
		Help:      "Sum of author royalties settled by group payments",
	})
	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Name:      "import_rows_total",
		Help:      "Bulk import rows by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(SalesCreated, SalesMarkedPaid, RoyaltyPaid, ImportRows)
}

// ObservePayment records a settled group payment.
func ObservePayment(count int, amount decimal.Decimal) {
	SalesMarkedPaid.Add(float64(count))
	RoyaltyPaid.Add(amount.InexactFloat64())
}

// ObserveImport records the outcome counts of one bulk preview.
func ObserveImport(valid, invalid, unmatched int) {
	ImportRows.WithLabelValues(ImportValid).Add(float64(valid))
	ImportRows.WithLabelValues(ImportInvalid).Add(float64(invalid))
	ImportRows.WithLabelValues(ImportUnmatched).Add(float64(unmatched))
}
