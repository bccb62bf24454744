// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/fold"
)

/*
TestString strips accents, folds case and squeezes whitespace.
*/
func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Émile Zola", "emile zola"},
		{"  Müller   und  Söhne ", "muller und sohne"},
		{"CAFÉ", "cafe"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, fold.String(tt.in))
		})
	}
}

/*
TestContains matches substrings regardless of case and accents.
*/
func TestContains(t *testing.T) {
	assert.True(t, fold.Contains("The Émigré's Garden", "emigre"))
	assert.True(t, fold.Contains("Anything", ""))
	assert.False(t, fold.Contains("Winter Tales", "summer"))
}
