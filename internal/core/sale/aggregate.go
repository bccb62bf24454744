// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/fold"
	"github.com/taibuivan/folio/pkg/pagination"
	"github.com/taibuivan/folio/pkg/query"
)

// SortDirection orders a listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable columns.
const (
	SortPeriod           = "period"
	SortTitle            = "title"
	SortAuthors          = "authors"
	SortQuantity         = "quantity"
	SortPublisherRevenue = "publisher_revenue"
	SortAuthorRoyalty    = "author_royalty"
	SortPaid             = "paid"
	SortID               = "id"
)

var comparators = map[string]func(a, b View) int{
	SortPeriod:           func(a, b View) int { return strings.Compare(a.Period.Key(), b.Period.Key()) },
	SortTitle:            func(a, b View) int { return strings.Compare(fold.String(a.Title), fold.String(b.Title)) },
	SortAuthors:          func(a, b View) int { return strings.Compare(fold.String(a.AuthorNames), fold.String(b.AuthorNames)) },
	SortQuantity:         func(a, b View) int { return cmp.Compare(a.Quantity, b.Quantity) },
	SortPublisherRevenue: func(a, b View) int { return a.PublisherRevenue.Cmp(b.PublisherRevenue) },
	SortAuthorRoyalty:    func(a, b View) int { return a.AuthorRoyalty.Cmp(b.AuthorRoyalty) },
	SortPaid:             func(a, b View) int { return cmp.Compare(boolRank(a.Paid), boolRank(b.Paid)) },
	SortID:               func(a, b View) int { return cmp.Compare(a.ID, b.ID) },
}

// SortColumns lists the accepted sort_by values.
func SortColumns() []string {
	columns := make([]string, 0, len(comparators))
	for column := range comparators {
		columns = append(columns, column)
	}
	slices.Sort(columns)
	return columns
}

// Query is the listing state: filter, sort and page.
//
// The With* helpers return a copy reset to page 1, so a changed filter,
// sort or page size never lands on a stale page.
type Query struct {
	Search   string
	DateFrom *Period
	DateTo   *Period
	SortBy   string
	SortDir  SortDirection
	Page     int
	PageSize int
	ShowAll  bool

	// UnpaidOnly hides paid sales.
	UnpaidOnly bool
}

// DefaultQuery lists the most recent periods first.
func DefaultQuery() Query {
	return Query{
		SortBy:   SortPeriod,
		SortDir:  SortDesc,
		Page:     pagination.DefaultPage,
		PageSize: pagination.DefaultLimit,
	}
}

func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Page = 1
	return q
}

func (q Query) WithRange(from, to *Period) Query {
	q.DateFrom, q.DateTo = from, to
	q.Page = 1
	return q
}

func (q Query) WithSort(column string, direction SortDirection) Query {
	q.SortBy, q.SortDir = column, direction
	q.Page = 1
	return q
}

// WithPageSize changes the page size; showAll disables slicing.
func (q Query) WithPageSize(size int, showAll bool) Query {
	q.PageSize, q.ShowAll = size, showAll
	q.Page = 1
	return q
}

// WithPage moves to another page of the same listing.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Page is one window of an aggregated listing.
//
// Total counts every filtered row; PageSize is the effective size, which in
// show-all mode equals Total.
type Page struct {
	Items    []View `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	ShowAll  bool   `json:"show_all"`
}

// Meta converts the page into response pagination metadata.
func (p Page) Meta() pagination.Meta {
	meta := pagination.NewMeta(p.Page, p.PageSize, p.Total)
	meta.ShowAll = p.ShowAll
	return meta
}

/*
Aggregate filters, sorts and paginates sale views.

# Pipeline

 1. Search: case and accent insensitive substring on title and author names.
 2. Range: inclusive DateFrom/DateTo compared on [Period.Key].
 3. Sort: stable, so equal keys keep their input order.
 4. Slice: [(page-1)*size, page*size), with page clamped to [1, last page].

The input slice is not modified.
*/
func Aggregate(views []View, q Query) Page {
	filtered := make([]View, 0, len(views))
	for _, view := range views {
		if q.UnpaidOnly && view.Paid {
			continue
		}
		if q.Search != "" && !fold.Contains(view.Title, q.Search) && !fold.Contains(view.AuthorNames, q.Search) {
			continue
		}
		key := view.Period.Key()
		if q.DateFrom != nil && key < q.DateFrom.Key() {
			continue
		}
		if q.DateTo != nil && key > q.DateTo.Key() {
			continue
		}
		filtered = append(filtered, view)
	}

	if compare, ok := comparators[q.SortBy]; ok {
		if q.SortDir == SortDesc {
			slices.SortStableFunc(filtered, func(a, b View) int { return compare(b, a) })
		} else {
			slices.SortStableFunc(filtered, compare)
		}
	}

	total := len(filtered)
	if q.ShowAll {
		return Page{Items: filtered, Total: total, Page: 1, PageSize: total, ShowAll: true}
	}

	size := q.PageSize
	if size <= 0 {
		size = pagination.DefaultLimit
	}

	lastPage := max(pagination.TotalPages(total, size), 1)
	page := min(max(q.Page, 1), lastPage)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Page{Items: filtered[start:end], Total: total, Page: page, PageSize: size}
}

// QueryFromRequest reads q, sort_by, sort_dir, date_from, date_to, unpaid,
// page and page_size ("all" for show-all) from the query string.
func QueryFromRequest(request *http.Request) (Query, error) {
	values := request.URL.Query()
	params := pagination.FromRequest(request)

	q := DefaultQuery()
	q.Search = strings.TrimSpace(values.Get("q"))
	q.Page = params.Page
	q.PageSize = params.Limit
	q.ShowAll = params.All
	q.UnpaidOnly = query.Bool(values.Get("unpaid"))

	var details []apperr.FieldError

	if column := values.Get("sort_by"); column != "" {
		if _, ok := comparators[column]; !ok {
			details = append(details, apperr.FieldError{Field: "sort_by", Message: "Must be one of: " + strings.Join(SortColumns(), ", ")})
		}
		q.SortBy = column
	}

	switch direction := SortDirection(strings.ToLower(values.Get("sort_dir"))); direction {
	case "":
	case SortAsc, SortDesc:
		q.SortDir = direction
	default:
		details = append(details, apperr.FieldError{Field: "sort_dir", Message: "Must be one of: asc, desc"})
	}

	for _, bound := range []struct {
		name   string
		target **Period
	}{{"date_from", &q.DateFrom}, {"date_to", &q.DateTo}} {
		raw := values.Get(bound.name)
		if raw == "" {
			continue
		}
		period, err := ParsePeriod(raw)
		if err != nil {
			details = append(details, apperr.FieldError{Field: bound.name, Message: "Month must match MM-YYYY (e.g. 01-2025)"})
			continue
		}
		*bound.target = &period
	}

	if len(details) > 0 {
		return Query{}, apperr.ValidationError("Invalid listing parameters", details...)
	}
	return q, nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
