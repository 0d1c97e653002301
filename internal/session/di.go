package session

import (
	"github.com/habeshalab/tubebot/internal/config"
	"github.com/habeshalab/tubebot/internal/delivery"
	"github.com/habeshalab/tubebot/internal/download"
	"github.com/habeshalab/tubebot/internal/extractor"
	"github.com/habeshalab/tubebot/internal/repository"
	"github.com/habeshalab/tubebot/internal/resolver"
	"github.com/habeshalab/tubebot/internal/search"
	"github.com/habeshalab/tubebot/internal/stats"
	"github.com/habeshalab/tubebot/internal/telegram"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		tg := do.MustInvoke[telegram.Client](i)
		searcher := do.MustInvoke[search.Provider](i)
		ex := do.MustInvoke[extractor.Extractor](i)
		res := do.MustInvoke[*resolver.Resolver](i)
		dl := do.MustInvoke[*download.Downloader](i)
		del := do.MustInvoke[*delivery.Sender](i)
		repo := do.MustInvoke[repository.Repository](i)
		collector := do.MustInvoke[*stats.Collector](i)
		return NewManager(cfg, tg, searcher, ex, res, dl, del, repo, collector), nil
	})
}
