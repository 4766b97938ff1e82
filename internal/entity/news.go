package entity

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// NewsItem represents a market news headline tied to one or more symbols.
// It is immutable once observed; its identity is (headline, published-at).
type NewsItem struct {
	Headline    string    `json:"headline"`
	PublishedAt time.Time `json:"published_at"`
	Symbols     []string  `json:"symbols"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// HashIdentifier returns the deduplication key for the item: an md5 digest of
// the headline and publication time.
func (n NewsItem) HashIdentifier() string {
	sum := md5.Sum([]byte(n.Headline + "|" + n.PublishedAt.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])
}

// Quote is a point-in-time price snapshot for a symbol. VolumeChangePercent
// is nil when the upstream source did not report it.
type Quote struct {
	Symbol              string   `json:"symbol"`
	LastPrice           float64  `json:"last_price"`
	Sector              string   `json:"sector"`
	ChangePercent       float64  `json:"change_percent"`
	Open                float64  `json:"open,omitempty"`
	High                float64  `json:"high,omitempty"`
	Low                 float64  `json:"low,omitempty"`
	Volume              int64    `json:"volume,omitempty"`
	VolumeChangePercent *float64 `json:"volume_change_percent,omitempty"`
}

// InstitutionalActivity is one cycle's net institutional position for a
// symbol. NetPosition > 0 means net buying, < 0 net selling.
type InstitutionalActivity struct {
	Symbol       string `json:"symbol"`
	NetPosition  int64  `json:"net_position"`
	BuyQuantity  int64  `json:"buy_quantity"`
	SellQuantity int64  `json:"sell_quantity"`
}
