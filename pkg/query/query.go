// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses repeated and comma-separated URL query parameters.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses values like ?author_id=1&author_id=2 or ?author_id=1,2
// into integers. Invalid entries are ignored.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		for _, part := range StringSlice(v) {
			if i, err := strconv.Atoi(part); err == nil {
				res = append(res, i)
			}
		}
	}
	return res
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Bool reports whether val is one of "1", "true" or "yes" (case-insensitive).
func Bool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
