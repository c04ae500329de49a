package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceFuncs(t *testing.T) {
	assert.True(t, Contains([]int{1, 2, 3}, 2))
	assert.False(t, Contains([]int{}, 2))

	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, strconv.Itoa))
	assert.Empty(t, Map(nil, strconv.Itoa))

	s := AppendUnique([]int{1}, 2)
	s = AppendUnique(s, 1)
	assert.Equal(t, []int{1, 2}, s)
}
