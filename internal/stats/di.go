package stats

import (
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(_ do.Injector) (*Collector, error) {
		return NewCollector(), nil
	})
}
