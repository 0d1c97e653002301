package extractor

import (
	extractorpkg "github.com/habeshalab/tubebot/internal/extractor"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(_ do.Injector) (extractorpkg.Extractor, error) {
		return NewYouTubeExtractor(), nil
	})
}
