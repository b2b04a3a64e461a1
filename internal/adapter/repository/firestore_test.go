package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"targ/pkg/errors"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		total, limit, offset int
		start, end           int
	}{
		{total: 10, limit: 3, offset: 0, start: 0, end: 3},
		{total: 10, limit: 3, offset: 9, start: 9, end: 10},
		{total: 10, limit: 3, offset: 12, start: 10, end: 10},
		{total: 10, limit: 0, offset: 2, start: 2, end: 10},
		{total: 0, limit: 5, offset: 0, start: 0, end: 0},
		{total: 4, limit: 2, offset: -1, start: 0, end: 2},
	}
	for _, tt := range tests {
		start, end := pageBounds(tt.total, tt.limit, tt.offset)
		assert.Equal(t, tt.start, start, "start for %+v", tt)
		assert.Equal(t, tt.end, end, "end for %+v", tt)
	}
}

func TestToUpdatesIsSorted(t *testing.T) {
	updates := toUpdates(map[string]interface{}{"title": "x", "price": 10, "currency": "RON"})

	assert.Len(t, updates, 3)
	assert.Equal(t, "currency", updates[0].Path)
	assert.Equal(t, "price", updates[1].Path)
	assert.Equal(t, "title", updates[2].Path)
}

func TestPassThroughKeepsAppErrors(t *testing.T) {
	conflict := errors.Conflict("already promoted", nil)
	assert.Same(t, conflict, passThrough(conflict, "ignored"))

	wrapped := passThrough(fmt.Errorf("deadline"), "Failed to promote listing")
	assert.True(t, errors.Is(wrapped, errors.CodeInternal))
}
