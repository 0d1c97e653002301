package search

import "context"

// VideoSummary is one search hit in provider rank order.
type VideoSummary struct {
	VideoID string
	Title   string
	URL     string
}

type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]VideoSummary, error)
}
