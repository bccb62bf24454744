// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold normalizes free text for case and accent insensitive matching.
//
// # Usage
//
// Sales search compares folded needles against folded book titles and author
// names, so "Muller" finds "Müller" and "EMILE" finds "Émile".
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String folds s for comparison.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Recomposes to NFC.
// 4. Applies Unicode case folding.
// 5. Collapses runs of whitespace and trims the ends.
func String(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = cases.Fold().String(result)

	return strings.Join(strings.Fields(result), " ")
}

// Contains reports whether the folded haystack contains the folded needle.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(String(haystack), String(needle))
}
