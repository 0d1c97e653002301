package search

import (
	"context"

	"github.com/habeshalab/tubebot/internal/config"
	searchpkg "github.com/habeshalab/tubebot/internal/search"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (searchpkg.Provider, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewYouTubeProvider(context.Background(), c.YouTubeAPIKey)
	})
}
