package resolver

import (
	"github.com/habeshalab/tubebot/internal/config"
	"github.com/habeshalab/tubebot/internal/extractor"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Resolver, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ex := do.MustInvoke[extractor.Extractor](i)
		return New(ex, Policy{
			Attempts: cfg.ResolverAttempts,
			Delay:    cfg.ResolverRetryDelay,
		}), nil
	})
}
