// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with small generic
helpers used across the ledger code.
*/
package slice

import (
	"cmp"
	"slices"
)

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns only the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// SortedUnique returns a sorted copy of input without duplicates.
//
// Author id sets are canonicalized this way before grouping and matching.
func SortedUnique[T cmp.Ordered](input []T) []T {
	out := slices.Clone(input)
	slices.Sort(out)
	return slices.Compact(out)
}
