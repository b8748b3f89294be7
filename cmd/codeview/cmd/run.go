package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-drift/codeview/pkg/config"
	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/engine/headless"
	"github.com/go-drift/codeview/pkg/errors"
	"github.com/go-drift/codeview/pkg/platform"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Reconcile an editor against a state document",
		Long: `Load the in-process engine, create the editor a state document
describes, and print the engine calls it took.

The document is YAML (.yaml, .yml) or TOML (.toml). codeview.yaml or
codeview.toml next to it configures the engine loader, extra theme files
and the change debounce.

Flags:
  --watch          Keep running and reconcile again each time the file changes
  --timeout DUR    Give up creating the editor after DUR (default 10s)
  --verbose        Print error kinds, channels and stack traces`,
		Usage: "codeview run <state-file> [--watch] [--timeout DUR] [--verbose]",
		Run:   runRun,
	})
}

type runOptions struct {
	watch   bool
	verbose bool
	timeout time.Duration
}

func parseRunArgs(args []string) ([]string, runOptions, error) {
	opts := runOptions{timeout: 10 * time.Second}
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--watch":
			opts.watch = true
		case "--verbose":
			opts.verbose = true
		case "--timeout":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--timeout requires a duration")
			}
			d, err := time.ParseDuration(args[i+1])
			if err != nil || d <= 0 {
				return nil, opts, fmt.Errorf("invalid --timeout %q", args[i+1])
			}
			opts.timeout = d
			i++
		default:
			filtered = append(filtered, arg)
		}
	}
	return filtered, opts, nil
}

func runRun(args []string) error {
	args, opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("state file is required\n\nUsage: codeview run <state-file> [--watch]")
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	errors.SetHandler(&errors.LogHandler{Verbose: opts.verbose})
	if names, err := cfg.LoadThemes(); err != nil {
		return fmt.Errorf("failed to load themes: %w", err)
	} else if len(names) > 0 {
		fmt.Fprintf(stdout, "themes: %v\n", names)
	}
	state, err := config.LoadState(path)
	if err != nil {
		return err
	}

	engine.SetDefaultBoot(headless.Boot)
	loop := platform.NewLoop(0)
	loop.Install()
	defer platform.RegisterDispatch(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(stdout, cfg.EditorOptions())
	loop.Post(func() { s.apply(state) })

	if !opts.watch {
		return runOnce(ctx, loop, s, opts.timeout)
	}
	return runWatch(ctx, loop, s, path)
}

// runOnce runs the loop until the editor exists, then unmounts it.
func runOnce(ctx context.Context, loop *platform.Loop, s *session, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	created := false
	s.onCreated = func() {
		created = true
		cancel()
	}
	loop.Run(ctx)
	s.close()
	if !created {
		return fmt.Errorf("editor not created (state %s)", s.state())
	}
	return nil
}

// runWatch reconciles on every change of path until interrupted.
func runWatch(ctx context.Context, loop *platform.Loop, s *session, path string) error {
	w, err := watchFile(path, func() {
		platform.Dispatch(func() { reload(s, path) })
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Close()

	fmt.Fprintf(stdout, "Watching %s (Ctrl+C to stop)...\n", filepath.Base(path))
	loop.Run(ctx)
	s.close()
	fmt.Fprintln(stdout, "\nWatch stopped.")
	return nil
}

// reload re-reads the state document and applies it. A document that
// fails to load leaves the editor as it is.
func reload(s *session, path string) {
	state, err := config.LoadState(path)
	if err != nil {
		errors.Report(&errors.EditorError{
			Op:   "codeview.reload",
			Kind: errors.KindConfig,
			Err:  err,
		})
		return
	}
	s.apply(state)
}
