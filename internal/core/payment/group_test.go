// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/payment"
	"github.com/taibuivan/folio/internal/core/sale"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func view(id int, royalty string, paid bool, authors ...book.AuthorRef) sale.View {
	b := &book.Book{ID: id, Title: "Book", Authors: authors}
	s := &sale.Sale{ID: id, BookID: id, Quantity: 1, AuthorRoyalty: d(royalty), Paid: paid}
	return sale.NewView(s, b)
}

var (
	ann = book.AuthorRef{ID: 1, Name: "Ann Lee"}
	bo  = book.AuthorRef{ID: 2, Name: "Bo Chen"}
)

/*
TestGroupUnpaid_AuthorSets checks that a co-authored book forms its own group
regardless of credit order, and paid sales are skipped.
*/
func TestGroupUnpaid_AuthorSets(t *testing.T) {
	groups := payment.GroupUnpaid([]sale.View{
		view(1, "10.00", false, ann),
		view(2, "5.00", false, bo, ann),
		view(3, "7.25", false, ann, bo),
		view(4, "99.00", true, ann),
		view(5, "3.00", true, bo),
	})

	require.Len(t, groups, 2)

	assert.Equal(t, []int{1}, groups[0].AuthorIDs)
	assert.Equal(t, "Ann Lee", groups[0].AuthorNames)
	assert.Equal(t, 1, groups[0].SaleCount)
	assert.True(t, d("10.00").Equal(groups[0].UnpaidTotal))

	assert.Equal(t, []int{1, 2}, groups[1].AuthorIDs)
	assert.Equal(t, 2, groups[1].SaleCount)
	assert.True(t, d("12.25").Equal(groups[1].UnpaidTotal))
	assert.Equal(t, "$12.25", groups[1].UnpaidTotalDisplay)
}

/*
TestGroupUnpaid_NameIndependentOfCreditOrder names a group by author id order,
whichever credit order its first sale happens to carry.
*/
func TestGroupUnpaid_NameIndependentOfCreditOrder(t *testing.T) {
	forward := view(1, "1.00", false, ann, bo)
	reversed := view(2, "2.00", false, bo, ann)

	first := payment.GroupUnpaid([]sale.View{reversed, forward})
	second := payment.GroupUnpaid([]sale.View{forward, reversed})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "Ann Lee, Bo Chen", first[0].AuthorNames)
	assert.Equal(t, first[0].AuthorNames, second[0].AuthorNames)
}

/*
TestGroupUnpaid_RoundsOnce sums exact values before rounding.
*/
func TestGroupUnpaid_RoundsOnce(t *testing.T) {
	groups := payment.GroupUnpaid([]sale.View{
		view(1, "0.333", false, ann),
		view(2, "0.333", false, ann),
		view(3, "0.333", false, ann),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "1.00", groups[0].UnpaidTotal.StringFixed(2))
}

/*
TestGroupUnpaid_Ordering uses locale collation rather than byte order.
*/
func TestGroupUnpaid_Ordering(t *testing.T) {
	groups := payment.GroupUnpaid([]sale.View{
		view(1, "1.00", false, book.AuthorRef{ID: 10, Name: "Zed Park"}),
		view(2, "1.00", false, book.AuthorRef{ID: 11, Name: "Émile Roux"}),
		view(3, "1.00", false, book.AuthorRef{ID: 12, Name: "Eric Wood"}),
		view(4, "1.00", false, book.AuthorRef{ID: 13, Name: "adam Fry"}),
	})

	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.AuthorNames)
	}
	assert.Equal(t, []string{"adam Fry", "Émile Roux", "Eric Wood", "Zed Park"}, names)
}

func TestGroupUnpaid_Empty(t *testing.T) {
	assert.Empty(t, payment.GroupUnpaid(nil))
	assert.Empty(t, payment.GroupUnpaid([]sale.View{view(1, "4.00", true, ann)}))
}

/*
TestGroupUnpaid_TotalsMatchUnpaidSum checks that no unpaid royalty is lost or
counted twice across groups.
*/
func TestGroupUnpaid_TotalsMatchUnpaidSum(t *testing.T) {
	views := []sale.View{
		view(1, "10.10", false, ann),
		view(2, "20.20", false, bo),
		view(3, "30.30", false, ann, bo),
		view(4, "40.40", true, ann),
		view(5, "0.01", false, bo, ann),
	}

	expected := decimal.Zero
	for _, v := range views {
		if !v.Paid {
			expected = expected.Add(v.AuthorRoyalty)
		}
	}

	actual := decimal.Zero
	for _, group := range payment.GroupUnpaid(views) {
		actual = actual.Add(group.UnpaidTotal)
	}

	assert.True(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
}
