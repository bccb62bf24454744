// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/royalty"
	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/pkg/slice"
)

/*
GroupUnpaid groups unpaid sales by the author set of their book.

Paid sales are ignored and groups without sales are never emitted. Each
total is summed exactly and rounded once. Group names list authors in id order. Groups are ordered by display name
with an English collator, then by key for identical names.
*/
func GroupUnpaid(views []sale.View) []AuthorGroup {
	byKey := map[string]*AuthorGroup{}
	var keys []string

	unpaid := slice.Filter(views, func(view sale.View) bool { return !view.Paid })
	for _, view := range unpaid {
		authorIDs := view.AuthorIDs()
		key := groupKey(authorIDs)

		group, ok := byKey[key]
		if !ok {
			group = &AuthorGroup{AuthorIDs: authorIDs, AuthorNames: canonicalNames(view.Authors), UnpaidTotal: decimal.Zero}
			byKey[key] = group
			keys = append(keys, key)
		}

		group.Sales = append(group.Sales, view)
		group.UnpaidTotal = group.UnpaidTotal.Add(view.AuthorRoyalty)
	}

	groups := make([]AuthorGroup, 0, len(keys))
	for _, key := range keys {
		group := byKey[key]
		group.SaleCount = len(group.Sales)
		group.UnpaidTotal = royalty.Round(group.UnpaidTotal)
		group.UnpaidTotalDisplay = sale.FormatMoney(group.UnpaidTotal)
		groups = append(groups, *group)
	}

	collator := collate.New(language.English)
	slices.SortStableFunc(groups, func(a, b AuthorGroup) int {
		if byName := collator.CompareString(a.AuthorNames, b.AuthorNames); byName != 0 {
			return byName
		}
		return strings.Compare(groupKey(a.AuthorIDs), groupKey(b.AuthorIDs))
	})

	return groups
}

// canonicalNames joins author names in id order so every book crediting the
// same set yields the same group name.
func canonicalNames(authors []book.AuthorRef) string {
	sorted := slices.Clone(authors)
	slices.SortStableFunc(sorted, func(a, b book.AuthorRef) int { return a.ID - b.ID })
	sorted = slices.CompactFunc(sorted, func(a, b book.AuthorRef) bool { return a.ID == b.ID })
	return strings.Join(slice.Map(sorted, func(a book.AuthorRef) string { return a.Name }), ", ")
}

// groupKey joins a sorted id set, e.g. "3,7".
func groupKey(authorIDs []int) string {
	return strings.Join(slice.Map(authorIDs, strconv.Itoa), ",")
}
