package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagedListMiddlePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	paged := NewPagedList(items, 23, 2, 5)

	assert.Equal(t, 2, paged.Meta.CurrentPage)
	assert.Equal(t, 5, paged.Meta.TotalPages)
	assert.Equal(t, 23, paged.Meta.TotalItems)
	assert.Equal(t, 5, paged.Meta.ItemsOnPage)
	assert.True(t, paged.Meta.HasPrevious)
	assert.True(t, paged.Meta.HasNext)
}

func TestNewPagedListLastPartialPage(t *testing.T) {
	items := []int{1, 2, 3}
	paged := NewPagedList(items, 23, 5, 5)

	assert.Equal(t, 5, paged.Meta.TotalPages)
	assert.Equal(t, 3, paged.Meta.ItemsOnPage)
	assert.True(t, paged.Meta.HasPrevious)
	assert.False(t, paged.Meta.HasNext)
}

func TestNewPagedListEmpty(t *testing.T) {
	paged := NewPagedList[int](nil, 0, 1, 10)

	assert.Equal(t, 0, paged.Meta.TotalPages)
	assert.Equal(t, 0, paged.Meta.ItemsOnPage)
	assert.False(t, paged.Meta.HasPrevious)
	assert.False(t, paged.Meta.HasNext)
}
