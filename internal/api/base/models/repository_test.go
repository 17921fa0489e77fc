package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginateResult(t *testing.T) {
	r := NewPaginateResult([]int{1, 2, 3}, 2, 3, 7)
	assert.Equal(t, int64(3), r.ItemCount)
	assert.Equal(t, int64(3), r.TotalPage)

	empty := NewPaginateResult[int](nil, 1, 10, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, int64(0), empty.TotalPage)
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, -5)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(10), limit)

	page, limit = NormalizePage(4, 25)
	assert.Equal(t, int64(4), page)
	assert.Equal(t, int64(25), limit)
}
