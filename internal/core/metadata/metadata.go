// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metadata looks up bibliographic records for an ISBN from an external
provider so editors can prefill a book form.

Lookups are read-only: nothing in the local catalog changes. Results are
cached in Redis when a client is configured.
*/
package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Record is the provider's view of a book.
type Record struct {
	ISBN             string   `json:"isbn"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	ISBN13           *string  `json:"isbn13"`
	ISBN10           *string  `json:"isbn10"`
	PublicationYear  *int     `json:"publication_year"`
	PublicationMonth *string  `json:"publication_month"`
}

// publishDateLayouts covers the spellings Open Library returns most often.
var publishDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
	"Jan 2006",
	"2006-01-02",
	"2006-01",
	"01/02/2006",
}

var yearPattern = regexp.MustCompile(`\b(1[5-9]\d{2}|2\d{3})\b`)

// ParsePublishDate extracts a year and, when present, a 2-digit month.
//
// A month is never returned without a year. Unrecognized text yields nils.
func ParsePublishDate(raw string) (*int, *string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range publishDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			year := parsed.Year()
			month := strconv.Itoa(int(parsed.Month()))
			if len(month) == 1 {
				month = "0" + month
			}
			return &year, &month
		}
	}

	match := yearPattern.FindString(raw)
	if match == "" {
		return nil, nil
	}
	year, _ := strconv.Atoi(match)
	return &year, nil
}
