// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package royalty

import "github.com/shopspring/decimal"

// Editor holds the royalty state of a sale while it is being created or edited.
//
// # Override rules
//
//   - A manual royalty that differs from the computed value marks the sale overridden.
//   - Revenue or rate changes recompute the royalty only when it is not overridden.
//   - [Editor.Revert] recomputes and clears the flag.
type Editor struct {
	Revenue    decimal.Decimal
	Rate       decimal.Decimal
	Royalty    decimal.Decimal
	Overridden bool
}

// NewEditor starts from freshly computed values (not overridden).
func NewEditor(revenue, rate decimal.Decimal) (*Editor, error) {
	editor := &Editor{Revenue: revenue, Rate: rate}
	if err := editor.Revert(); err != nil {
		return nil, err
	}
	return editor, nil
}

// Restore rebuilds an editor from a stored sale.
func Restore(revenue, rate, royalty decimal.Decimal, overridden bool) *Editor {
	return &Editor{Revenue: revenue, Rate: rate, Royalty: royalty, Overridden: overridden}
}

// SetRoyalty applies a manual royalty edit.
func (editor *Editor) SetRoyalty(value decimal.Decimal) error {
	computed, err := Compute(editor.Revenue, editor.Rate)
	if err != nil {
		return err
	}

	editor.Royalty = Round(value)
	editor.Overridden = !editor.Royalty.Equal(computed)
	return nil
}

// SetRevenue changes the revenue. An overridden royalty is kept as-is.
func (editor *Editor) SetRevenue(revenue decimal.Decimal) error {
	editor.Revenue = revenue
	return editor.recompute()
}

// SetRate changes the rate, e.g. when the sale is moved to another book.
// An overridden royalty is kept as-is.
func (editor *Editor) SetRate(rate decimal.Decimal) error {
	editor.Rate = rate
	return editor.recompute()
}

// Revert discards any override and recomputes from revenue and rate.
func (editor *Editor) Revert() error {
	computed, err := Compute(editor.Revenue, editor.Rate)
	if err != nil {
		return err
	}

	editor.Royalty = computed
	editor.Overridden = false
	return nil
}

func (editor *Editor) recompute() error {
	computed, err := Compute(editor.Revenue, editor.Rate)
	if err != nil {
		return err
	}

	if !editor.Overridden {
		editor.Royalty = computed
	}
	return nil
}
