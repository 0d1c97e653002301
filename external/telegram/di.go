package telegram

import (
	"github.com/habeshalab/tubebot/internal/config"
	telegrampkg "github.com/habeshalab/tubebot/internal/telegram"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (telegrampkg.Client, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClient(c.BotToken)
	})
}
