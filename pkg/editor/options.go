package editor

import (
	"time"

	"github.com/go-drift/codeview/pkg/engine"
)

// Option configures a controller.
type Option func(*lifecycle)

// WithLoader selects the loader. The default is engine.DefaultLoader().
func WithLoader(l *engine.Loader) Option {
	return func(lc *lifecycle) {
		lc.loader = l
	}
}

// WithLoaderConfig passes cfg to the loader. It only takes effect if this
// controller is the first to request the engine from its loader.
func WithLoaderConfig(cfg *engine.Config) Option {
	return func(lc *lifecycle) {
		lc.loaderCfg = cfg
	}
}

// WithDebounce sets the change notification quiescence window.
// Zero or negative selects DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(lc *lifecycle) {
		if d > 0 {
			lc.debounce = d
		}
	}
}

// withAfterFunc replaces the debounce timer source.
func withAfterFunc(f afterFunc) Option {
	return func(lc *lifecycle) {
		lc.after = f
	}
}
