// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "strings"

// NormalizeISBN strips every non-digit character.
//
// ISBN-10 check characters ("X") are dropped as well; Folio stores ISBN-10
// as ten digits.
func NormalizeISBN(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// IsISBN13 reports whether the normalized value has exactly 13 digits.
func IsISBN13(raw string) bool { return len(NormalizeISBN(raw)) == 13 }

// IsISBN10 reports whether the normalized value has exactly 10 digits.
func IsISBN10(raw string) bool { return len(NormalizeISBN(raw)) == 10 }

// IsISBN reports whether raw normalizes to 10 or 13 digits.
func IsISBN(raw string) bool { return IsISBN10(raw) || IsISBN13(raw) }

// Index maps normalized ISBN-13 and ISBN-10 values to their book.
//
// Both identifiers of a book point at the same entry.
type Index map[string]*Book

// NewIndex builds an index over books. Books without ISBNs are skipped.
func NewIndex(books []*Book) Index {
	index := make(Index, len(books)*2)
	for _, b := range books {
		for _, isbn := range []*string{b.ISBN13, b.ISBN10} {
			if isbn == nil {
				continue
			}
			if key := NormalizeISBN(*isbn); key != "" {
				index[key] = b
			}
		}
	}
	return index
}

// Lookup finds a book by any ISBN spelling ("978-0-12-345678-9" or digits).
func (index Index) Lookup(isbn string) (*Book, bool) {
	b, ok := index[NormalizeISBN(isbn)]
	return b, ok
}
