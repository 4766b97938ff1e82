package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchlistAddRemove(t *testing.T) {
	w := NewWatchlist()

	assert.True(t, w.Add(1, "reliance"))
	assert.False(t, w.Add(1, "RELIANCE"), "duplicate add should report false")
	assert.True(t, w.Add(1, "TCS"))

	assert.Equal(t, []string{"RELIANCE", "TCS"}, w.Get(1))

	assert.True(t, w.Remove(1, "tcs"))
	assert.False(t, w.Remove(1, "TCS"))
	assert.Equal(t, []string{"RELIANCE"}, w.Get(1))
}

func TestWatchlistPerChatIsolation(t *testing.T) {
	w := NewWatchlist()

	w.Add(1, "RELIANCE")
	w.Add(2, "INFY")

	assert.Equal(t, []string{"RELIANCE"}, w.Get(1))
	assert.Equal(t, []string{"INFY"}, w.Get(2))
	assert.Empty(t, w.Get(3))
}

func TestWatchlistRejectsEmptySymbol(t *testing.T) {
	w := NewWatchlist()
	assert.False(t, w.Add(1, "  "))
	assert.Empty(t, w.Get(1))
}
