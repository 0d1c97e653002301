package status

import (
	"github.com/habeshalab/tubebot/internal/config"
	"github.com/habeshalab/tubebot/internal/repository"
	"github.com/habeshalab/tubebot/internal/stats"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		collector := do.MustInvoke[*stats.Collector](i)
		repo := do.MustInvoke[repository.Repository](i)
		return NewServer(cfg.StatusAddr, collector, repo), nil
	})
}
