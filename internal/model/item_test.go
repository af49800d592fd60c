package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemLabel(t *testing.T) {
	it := Item{Name: "Leite", Quantity: 12}
	assert.Equal(t, "Leite (12)", it.Label())
	assert.False(t, it.HasImage())
}

func TestDefaultItemsAreFreshCopies(t *testing.T) {
	a := DefaultItems()
	a[0].Quantity = 99
	b := DefaultItems()
	assert.Equal(t, 3, b[0].Quantity)
	assert.Len(t, b, 3)
	for _, it := range b {
		assert.False(t, it.Bought, it.Name)
		assert.True(t, it.HasImage(), it.Name)
	}
}
