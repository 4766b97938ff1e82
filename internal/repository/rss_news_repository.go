package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// rssNewsRepository is a NewsRepository backed by one or more RSS feeds. It
// supplements the market API feed with headlines from financial news sites.
type rssNewsRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewRSSNewsRepository creates a new instance of rssNewsRepository.
func NewRSSNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &rssNewsRepository{
		cfg:    cfg,
		log:    log,
		parser: gofeed.NewParser(),
	}
}

// GetNews fetches all configured feeds and keeps items that mention one of
// the tracked symbols in the title. A failing feed is logged and skipped so
// one broken source does not starve the cycle.
func (r *rssNewsRepository) GetNews(ctx context.Context, symbols []string) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	for _, feedURL := range r.cfg.RSS.FeedURLs {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			r.log.ErrorContext(ctx, "Failed to parse RSS feed",
				logger.ErrorField(err), logger.StringField("feed_url", feedURL))
			continue
		}

		for _, item := range feed.Items {
			headline := utils.CleanToValidUTF8(strings.TrimSpace(item.Title))
			if headline == "" {
				headline = stripHTML(item.Description)
			}
			if headline == "" {
				continue
			}

			matched := matchSymbols(headline, symbols)
			if len(matched) == 0 {
				continue
			}

			items = append(items, entity.NewsItem{
				Headline:    headline,
				PublishedAt: publishedAt(item),
				Symbols:     matched,
				URL:         item.Link,
				Source:      feed.Title,
			})
		}
	}
	return items, nil
}

// matchSymbols returns the tracked symbols mentioned in the headline as
// standalone uppercase tokens.
func matchSymbols(headline string, symbols []string) []string {
	tokens := strings.FieldsFunc(strings.ToUpper(headline), func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9')
	})
	present := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		present[tok] = true
	}

	var matched []string
	for _, symbol := range symbols {
		if present[strings.ToUpper(symbol)] {
			matched = append(matched, symbol)
		}
	}
	return matched
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Now().UTC()
}

// stripHTML extracts the text content of an HTML fragment. RSS descriptions
// frequently embed markup that would pollute the sentiment input.
func stripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fmt.Sprintf("<div>%s</div>", fragment)))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
