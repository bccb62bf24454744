// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
}

/*
TestSortedUnique leaves the input untouched.
*/
func TestSortedUnique(t *testing.T) {
	input := []int{7, 3, 7, 1}
	assert.Equal(t, []int{1, 3, 7}, slice.SortedUnique(input))
	assert.Equal(t, []int{7, 3, 7, 1}, input)
}
