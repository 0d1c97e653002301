package delivery

import (
	"github.com/habeshalab/tubebot/internal/telegram"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Sender, error) {
		client := do.MustInvoke[telegram.Client](i)
		return New(client), nil
	})
}
