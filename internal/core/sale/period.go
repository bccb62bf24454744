// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// PeriodPattern is the accepted MM-YYYY form of a sales month.
var PeriodPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(\d{4})$`)

// ErrInvalidPeriod is returned by [ParsePeriod] for malformed input.
var ErrInvalidPeriod = errors.New("period must match MM-YYYY")

// Period identifies the sales month a record belongs to.
//
// It is written as MM-YYYY. [Period.Key] gives the YYYY-MM form, which is
// the one to compare: raw MM-YYYY strings sort wrongly across years.
type Period struct {
	Month int
	Year  int
}

// ParsePeriod parses "MM-YYYY".
func ParsePeriod(raw string) (Period, error) {
	match := PeriodPattern.FindStringSubmatch(raw)
	if match == nil {
		return Period{}, ErrInvalidPeriod
	}

	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	return Period{Month: month, Year: year}, nil
}

// String returns the MM-YYYY form.
func (p Period) String() string {
	return fmt.Sprintf("%02d-%04d", p.Month, p.Year)
}

// Key returns the lexicographically comparable YYYY-MM form.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Label returns the display form, e.g. "January 2025".
func (p Period) Label() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", time.Month(p.Month).String(), p.Year)
}

// IsZero reports whether p is unset.
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// MarshalText encodes the period as MM-YYYY.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes an MM-YYYY period.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
