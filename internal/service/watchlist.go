package service

import (
	"sort"
	"strings"
	"sync"
)

// Watchlist is an in-memory per-chat symbol watchlist.
type Watchlist struct {
	mu    sync.RWMutex
	lists map[int64]map[string]struct{}
}

// NewWatchlist creates an empty Watchlist.
func NewWatchlist() *Watchlist {
	return &Watchlist{lists: make(map[int64]map[string]struct{})}
}

// Add puts symbol on the chat's watchlist and reports whether it was new.
func (w *Watchlist) Add(chatID int64, symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	list, ok := w.lists[chatID]
	if !ok {
		list = make(map[string]struct{})
		w.lists[chatID] = list
	}
	if _, exists := list[symbol]; exists {
		return false
	}
	list[symbol] = struct{}{}
	return true
}

// Remove drops symbol from the chat's watchlist and reports whether it was
// present.
func (w *Watchlist) Remove(chatID int64, symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	w.mu.Lock()
	defer w.mu.Unlock()

	list, ok := w.lists[chatID]
	if !ok {
		return false
	}
	if _, exists := list[symbol]; !exists {
		return false
	}
	delete(list, symbol)
	return true
}

// Get returns the chat's watchlist symbols in sorted order.
func (w *Watchlist) Get(chatID int64) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	list := w.lists[chatID]
	symbols := make([]string, 0, len(list))
	for symbol := range list {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
