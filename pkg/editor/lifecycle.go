package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/errors"
	"github.com/go-drift/codeview/pkg/platform"
	"github.com/go-drift/codeview/pkg/theme"
)

// lifecycle is the state machine shared by Controller and DiffController.
// Apart from the loader goroutine and debounce timers, every field is
// touched only on the UI thread.
type lifecycle struct {
	name string

	loader    *engine.Loader
	loaderCfg *engine.Config
	debounce  time.Duration
	after     afterFunc

	state  State
	eng    engine.Engine
	node   engine.MountNode
	cancel context.CancelFunc

	changes   *debouncer
	disposers []func()

	// ready runs once the engine is available; pass runs on every
	// reconciliation afterwards.
	ready func(engine.Engine)
	pass  func()
}

func newLifecycle(name string, opts []Option) lifecycle {
	lc := lifecycle{
		name:     name,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&lc)
		}
	}
	return lc
}

func (lc *lifecycle) op(step string) string {
	return lc.name + "." + step
}

// mount starts waiting for the engine. The wait is abandoned by unmount.
func (lc *lifecycle) mount() {
	if lc.state != StateUnmounted {
		return
	}
	lc.state = StateAwaitingEngine
	if lc.loader == nil {
		lc.loader = engine.DefaultLoader()
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.cancel = cancel
	loader, cfg := lc.loader, lc.loaderCfg

	go func() {
		eng, err := loader.Load(ctx, cfg)
		if ctx.Err() != nil {
			return
		}
		if !platform.Dispatch(func() { lc.engineLoaded(eng, err) }) {
			errors.Report(&errors.EditorError{
				Op:   lc.op("mount"),
				Kind: errors.KindPlatform,
				Err:  fmt.Errorf("no UI dispatch registered"),
			})
		}
	}()
}

// engineLoaded runs on the UI thread when the load finishes.
func (lc *lifecycle) engineLoaded(eng engine.Engine, err error) {
	if lc.state != StateAwaitingEngine {
		return
	}
	if err != nil {
		errors.Report(&errors.EditorError{
			Op:   lc.op("load"),
			Kind: errors.KindLoad,
			Err:  err,
		})
		return
	}
	lc.eng = eng
	lc.state = StateReady
	if lc.ready != nil {
		lc.ready(eng)
	}
	lc.reconcile()
}

// reconcile runs a pass if the engine is available.
func (lc *lifecycle) reconcile() {
	if lc.state != StateReady && lc.state != StateSynced {
		return
	}
	if lc.pass != nil {
		lc.pass()
	}
}

// setNode records the mount node and retries creation if it was waiting
// on one.
func (lc *lifecycle) setNode(node engine.MountNode) {
	if lc.state == StateDisposed {
		return
	}
	lc.node = node
	if node != nil && lc.state == StateReady {
		lc.reconcile()
	}
}

// synced marks the editor as created.
func (lc *lifecycle) synced() {
	lc.state = StateSynced
}

// onDispose registers cleanup to run on unmount, in reverse order.
func (lc *lifecycle) onDispose(fn func()) {
	if fn != nil {
		lc.disposers = append(lc.disposers, fn)
	}
}

// watch subscribes to content changes of every model and delivers one
// debounced notification per burst to deliver on the UI thread.
func (lc *lifecycle) watch(deliver func(), models ...engine.Model) {
	if lc.changes == nil {
		lc.changes = newDebouncer(lc.debounce, lc.after, func() {
			platform.Dispatch(func() {
				if lc.state != StateSynced {
					return
				}
				deliver()
			})
		})
	}
	for _, m := range models {
		lc.onDispose(m.OnDidChangeContent(lc.changes.Trigger))
	}
}

// applyThemes defines every registered theme and activates name.
func (lc *lifecycle) applyThemes(name string) {
	if err := theme.Apply(lc.eng.DefineTheme); err != nil {
		lc.report("defineTheme", errors.KindSync, err)
	}
	lc.setTheme(name)
}

func (lc *lifecycle) setTheme(name string) {
	if err := lc.eng.SetTheme(themeName(name)); err != nil {
		lc.report("setTheme", errors.KindSync, err)
	}
}

func (lc *lifecycle) report(step string, kind errors.ErrorKind, err error) {
	if err == nil {
		return
	}
	errors.Report(&errors.EditorError{
		Op:   lc.op(step),
		Kind: kind,
		Err:  err,
	})
}

// hook runs a user callback, reporting a panic instead of propagating it.
func (lc *lifecycle) hook(name string, fn func()) {
	defer errors.Recover(lc.op(name))
	fn()
}

// unmount tears everything down. It is idempotent.
func (lc *lifecycle) unmount() {
	if lc.state == StateDisposed {
		return
	}
	lc.state = StateDisposed
	if lc.cancel != nil {
		lc.cancel()
		lc.cancel = nil
	}
	if lc.changes != nil {
		lc.changes.Stop()
	}
	for i := len(lc.disposers) - 1; i >= 0; i-- {
		lc.disposers[i]()
	}
	lc.disposers = nil
	lc.node = nil
}

func themeName(name string) string {
	if name == "" {
		return theme.DefaultName
	}
	return name
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
