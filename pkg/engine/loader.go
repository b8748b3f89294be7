package engine

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config configures the first engine load. Later loads reuse the engine
// created by the first one and ignore their Config.
type Config struct {
	// AssetSource overrides where engine assets are fetched from (a CDN base
	// URL or a local path). Empty selects the bundled default.
	AssetSource string `yaml:"assetSource,omitempty" toml:"assetSource,omitempty" json:"assetSource,omitempty"`

	// Version pins the engine release ("v0.52.2"). Empty loads the latest.
	Version string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`

	// Locale selects the engine UI language.
	Locale string `yaml:"locale,omitempty" toml:"locale,omitempty" json:"locale,omitempty"`

	// Paths maps engine module names to asset locations.
	Paths map[string]string `yaml:"paths,omitempty" toml:"paths,omitempty" json:"paths,omitempty"`

	// Extra is passed to the engine untouched.
	Extra map[string]any `yaml:"extra,omitempty" toml:"extra,omitempty" json:"extra,omitempty"`
}

// BootFunc brings an engine up. It is called at most once per Loader.
type BootFunc func(ctx context.Context, cfg Config) (Engine, error)

// Loader memoizes one engine load. Every call to Load joins the same
// attempt; a failed attempt stays failed.
//
// All methods are safe for concurrent use.
type Loader struct {
	boot    BootFunc
	once    sync.Once
	done    chan struct{}
	cfg     Config
	eng     Engine
	err     error
	started atomic.Bool
}

// NewLoader creates a loader that boots the engine with boot.
func NewLoader(boot BootFunc) *Loader {
	return &Loader{
		boot: boot,
		done: make(chan struct{}),
	}
}

// Load starts the engine load on first call and waits for it to finish.
// cfg is honored only on the call that starts the load. Canceling ctx
// abandons the wait, never the load itself: the engine still finishes
// loading for everyone else.
func (l *Loader) Load(ctx context.Context, cfg *Config) (Engine, error) {
	l.once.Do(func() {
		if cfg != nil {
			l.cfg = *cfg
		}
		l.started.Store(true)
		go l.run(context.WithoutCancel(ctx))
	})

	select {
	case <-l.done:
		return l.eng, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)
	if l.boot == nil {
		l.err = ErrNoBoot
		return
	}
	l.eng, l.err = l.boot(ctx, l.cfg)
}

// Loaded returns the engine without waiting. ok is false while loading, if
// loading never started, or if it failed.
func (l *Loader) Loaded() (eng Engine, ok bool) {
	select {
	case <-l.done:
		return l.eng, l.err == nil
	default:
		return nil, false
	}
}

// Started reports whether a load has been requested.
func (l *Loader) Started() bool {
	return l.started.Load()
}

// Done is closed once the load has finished, successfully or not.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Config returns the configuration the load was started with, or the zero
// Config if no load has been requested.
func (l *Loader) Config() Config {
	if !l.started.Load() {
		return Config{}
	}
	return l.cfg
}

var (
	defaultMu     sync.Mutex
	defaultBoot   BootFunc
	defaultLoader *Loader
)

// SetDefaultBoot installs the boot function of the process-wide loader and
// resets it, so the next DefaultLoader call returns a fresh loader. Engine
// implementations call it from init; hosts call it to pick one.
func SetDefaultBoot(boot BootFunc) {
	defaultMu.Lock()
	defaultBoot = boot
	defaultLoader = nil
	defaultMu.Unlock()
}

// DefaultLoader returns the process-wide loader.
func DefaultLoader() *Loader {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLoader == nil {
		defaultLoader = NewLoader(defaultBoot)
	}
	return defaultLoader
}
