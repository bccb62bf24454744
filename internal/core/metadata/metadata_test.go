// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/internal/core/metadata"
)

func TestParsePublishDate(t *testing.T) {
	tests := []struct {
		raw   string
		year  int
		month string
	}{
		{"June 2005", 2005, "06"},
		{"March 4, 1999", 1999, "03"},
		{"Sep 2012", 2012, "09"},
		{"2018-11-02", 2018, "11"},
		{"2021-01", 2021, "01"},
		{"2005", 2005, ""},
		{"ca. 1987", 1987, ""},
		{"printed in 1962 by Gollancz", 1962, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			year, month := metadata.ParsePublishDate(tt.raw)

			if assert.NotNil(t, year) {
				assert.Equal(t, tt.year, *year)
			}
			if tt.month == "" {
				assert.Nil(t, month)
			} else if assert.NotNil(t, month) {
				assert.Equal(t, tt.month, *month)
			}
		})
	}
}

func TestParsePublishDate_Unknown(t *testing.T) {
	for _, raw := range []string{"", "   ", "unknown"} {
		year, month := metadata.ParsePublishDate(raw)
		assert.Nil(t, year, raw)
		assert.Nil(t, month, raw)
	}
}
