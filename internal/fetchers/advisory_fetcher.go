package fetchers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"cropcast/internal/models"
)

// AdvisoryMaxAge is how far back feed items still count as current
// growing-season advisories.
const AdvisoryMaxAge = 14 * 24 * time.Hour

// AdvisoryFetcher pulls agromet bulletins from an RSS/Atom feed.
type AdvisoryFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewAdvisoryFetcher creates a new advisory feed fetcher instance
func NewAdvisoryFetcher(client *resty.Client) *AdvisoryFetcher {
	return &AdvisoryFetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// FetchAdvisories fetches the feed and returns items newer than maxAge,
// newest first. Items without a parseable publication time are dropped.
func (f *AdvisoryFetcher) FetchAdvisories(ctx context.Context, feedURL string, maxAge time.Duration) ([]models.Advisory, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(feedURL)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch advisory feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("advisory feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse advisory feed: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	var advisories []models.Advisory
	for _, item := range feed.Items {
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published == nil || published.Before(cutoff) {
			continue
		}
		advisories = append(advisories, models.Advisory{
			Title:     item.Title,
			Link:      item.Link,
			Published: *published,
			Summary:   item.Description,
		})
	}

	sort.Slice(advisories, func(i, j int) bool {
		return advisories[i].Published.After(advisories[j].Published)
	})
	return advisories, nil
}
