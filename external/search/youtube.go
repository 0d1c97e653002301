package search

import (
	"context"
	"fmt"

	searchpkg "github.com/habeshalab/tubebot/internal/search"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeProvider searches videos through the YouTube Data API v3.
type YouTubeProvider struct {
	svc *youtube.Service
}

func NewYouTubeProvider(ctx context.Context, apiKey string) (searchpkg.Provider, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &YouTubeProvider{svc: svc}, nil
}

func (p *YouTubeProvider) Search(ctx context.Context, query string, maxResults int) ([]searchpkg.VideoSummary, error) {
	resp, err := p.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	results := make([]searchpkg.VideoSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		results = append(results, searchpkg.VideoSummary{
			VideoID: item.Id.VideoId,
			Title:   item.Snippet.Title,
			URL:     "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		})
	}
	return results, nil
}
