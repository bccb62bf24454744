// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/slice"
)

func view(id int, title, authors, period string, quantity int, royalty string) sale.View {
	p, err := sale.ParsePeriod(period)
	if err != nil {
		panic(err)
	}
	return sale.View{
		ID:            id,
		Title:         title,
		AuthorNames:   authors,
		Authors:       []book.AuthorRef{{ID: id, Name: authors}},
		Period:        p,
		Quantity:      quantity,
		AuthorRoyalty: decimal.RequireFromString(royalty),
	}
}

func ids(views []sale.View) []int {
	return slice.Map(views, func(v sale.View) int { return v.ID })
}

func fixture() []sale.View {
	return []sale.View{
		view(1, "Harbour Lights", "Ann Lee", "11-2025", 5, "10.00"),
		view(2, "Émigré Songs", "Zoé Müller", "12-2025", 3, "7.50"),
		view(3, "Winter Tales", "Bo Chen", "01-2026", 5, "12.25"),
		view(4, "Harbour Lights", "Ann Lee", "02-2026", 1, "1.00"),
		view(5, "Quiet Rooms", "Ann Lee", "11-2026", 5, "3.10"),
	}
}

/*
TestAggregate_Search folds case and accents on title and authors.
*/
func TestAggregate_Search(t *testing.T) {
	q := sale.Query{PageSize: 10}

	assert.Equal(t, []int{2}, ids(sale.Aggregate(fixture(), q.WithSearch("EMIGRE")).Items))
	assert.Equal(t, []int{2}, ids(sale.Aggregate(fixture(), q.WithSearch("muller")).Items))
	assert.Equal(t, []int{1, 4, 5}, ids(sale.Aggregate(fixture(), q.WithSearch("ann")).Items))
	assert.Empty(t, sale.Aggregate(fixture(), q.WithSearch("nothing")).Items)
}

/*
TestAggregate_DateRange compares periods across year boundaries.
*/
func TestAggregate_DateRange(t *testing.T) {
	period := func(raw string) *sale.Period {
		p, err := sale.ParsePeriod(raw)
		require.NoError(t, err)
		return &p
	}
	q := sale.Query{PageSize: 10}

	page := sale.Aggregate(fixture(), q.WithRange(period("11-2025"), period("01-2026")))
	assert.Equal(t, []int{1, 2, 3}, ids(page.Items))

	page = sale.Aggregate(fixture(), q.WithRange(period("01-2026"), period("11-2026")))
	assert.Equal(t, []int{3, 4, 5}, ids(page.Items))
	assert.NotContains(t, ids(page.Items), 2)

	page = sale.Aggregate(fixture(), q.WithRange(period("02-2026"), nil))
	assert.Equal(t, []int{4, 5}, ids(page.Items))
}

/*
TestAggregate_StableSort keeps input order for equal keys in both directions.
*/
func TestAggregate_StableSort(t *testing.T) {
	q := sale.Query{PageSize: 10}

	asc := sale.Aggregate(fixture(), q.WithSort(sale.SortQuantity, sale.SortAsc))
	assert.Equal(t, []int{4, 2, 1, 3, 5}, ids(asc.Items))

	desc := sale.Aggregate(fixture(), q.WithSort(sale.SortQuantity, sale.SortDesc))
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(desc.Items))

	byTitle := sale.Aggregate(fixture(), q.WithSort(sale.SortTitle, sale.SortAsc))
	assert.Equal(t, []int{2, 1, 4, 5, 3}, ids(byTitle.Items))

	byPeriod := sale.Aggregate(fixture(), q.WithSort(sale.SortPeriod, sale.SortDesc))
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(byPeriod.Items))

	byRoyalty := sale.Aggregate(fixture(), q.WithSort(sale.SortAuthorRoyalty, sale.SortAsc))
	assert.Equal(t, []int{4, 5, 2, 1, 3}, ids(byRoyalty.Items))
}

/*
TestAggregate_PagesCoverEverything concatenates all pages for several sizes
and expects the full sorted sequence exactly once.
*/
func TestAggregate_PagesCoverEverything(t *testing.T) {
	var views []sale.View
	for i := 1; i <= 23; i++ {
		views = append(views, view(i, fmt.Sprintf("Title %02d", i%7), "Ann Lee", "01-2025", i%4+1, "1.00"))
	}

	full := sale.Aggregate(views, sale.Query{SortBy: sale.SortTitle, SortDir: sale.SortAsc, ShowAll: true})
	require.Len(t, full.Items, 23)

	for _, size := range []int{1, 4, 5, 23, 50} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			q := sale.Query{SortBy: sale.SortTitle, SortDir: sale.SortAsc}.WithPageSize(size, false)

			var collected []int
			pages := (23 + size - 1) / size
			for p := 1; p <= pages; p++ {
				page := sale.Aggregate(views, q.WithPage(p))
				assert.Equal(t, p, page.Page)
				assert.Equal(t, 23, page.Total)
				assert.Equal(t, size, page.PageSize)
				collected = append(collected, ids(page.Items)...)
			}

			assert.Equal(t, ids(full.Items), collected)
		})
	}
}

/*
TestAggregate_ShowAll bypasses slicing and reports the total as page size.
*/
func TestAggregate_ShowAll(t *testing.T) {
	page := sale.Aggregate(fixture(), sale.Query{PageSize: 2, Page: 3}.WithPageSize(2, true))

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.PageSize)
	assert.True(t, page.Meta().ShowAll)
}

/*
TestAggregate_ClampsPage never returns an out-of-range page.
*/
func TestAggregate_ClampsPage(t *testing.T) {
	page := sale.Aggregate(fixture(), sale.Query{PageSize: 2, Page: 9})
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []int{5}, ids(page.Items))

	page = sale.Aggregate(fixture(), sale.Query{PageSize: 2, Page: -1})
	assert.Equal(t, 1, page.Page)

	empty := sale.Aggregate(nil, sale.Query{PageSize: 2, Page: 4})
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Items)
}

/*
TestQuery_HelpersResetPage moves back to page 1 on every state change.
*/
func TestQuery_HelpersResetPage(t *testing.T) {
	q := sale.DefaultQuery().WithPage(4)

	assert.Equal(t, 1, q.WithSearch("x").Page)
	assert.Equal(t, 1, q.WithRange(nil, nil).Page)
	assert.Equal(t, 1, q.WithSort(sale.SortID, sale.SortAsc).Page)
	assert.Equal(t, 1, q.WithPageSize(50, false).Page)
	assert.Equal(t, 4, q.Page)
}

func TestQueryFromRequest(t *testing.T) {
	request := httptest.NewRequest("GET", "/sales?q=ann&sort_by=title&sort_dir=ASC&date_from=11-2025&page=2&page_size=10", nil)

	q, err := sale.QueryFromRequest(request)
	require.NoError(t, err)

	assert.Equal(t, "ann", q.Search)
	assert.Equal(t, sale.SortTitle, q.SortBy)
	assert.Equal(t, sale.SortAsc, q.SortDir)
	require.NotNil(t, q.DateFrom)
	assert.Equal(t, "2025-11", q.DateFrom.Key())
	assert.Nil(t, q.DateTo)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.PageSize)
}

func TestQueryFromRequest_Invalid(t *testing.T) {
	request := httptest.NewRequest("GET", "/sales?sort_by=price&sort_dir=up&date_to=2026-01", nil)

	_, err := sale.QueryFromRequest(request)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 3)
}

func TestAggregate_UnpaidOnly(t *testing.T) {
	views := fixture()
	views[0].Paid = true
	views[3].Paid = true

	page := sale.Aggregate(views, sale.Query{PageSize: 10, UnpaidOnly: true})

	assert.Equal(t, []int{2, 3, 5}, ids(page.Items))
	assert.Equal(t, 3, page.Total)

	request := httptest.NewRequest("GET", "/sales?unpaid=true", nil)
	q, err := sale.QueryFromRequest(request)
	require.NoError(t, err)
	assert.True(t, q.UnpaidOnly)
}
