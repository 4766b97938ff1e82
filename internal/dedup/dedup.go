// Package dedup provides insertion-if-absent stores used to suppress repeat
// evaluation of news items. Entries expire after a retention horizon so the
// store stays bounded in a long-running process.
package dedup

import (
	"context"
	"time"
)

// DefaultRetention keeps keys long enough to cover the practical replay
// window of upstream news feeds.
const DefaultRetention = 72 * time.Hour

// Store records observed keys. Observe is safe for concurrent use.
type Store interface {
	// Observe records key and reports whether this was its first sighting
	// within the retention horizon.
	Observe(ctx context.Context, key string) (bool, error)
}
