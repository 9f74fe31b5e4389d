// Command mocktools lists, calls and serves the catalog-backed mock tools.
//
//	mocktools [-config file] [-data dir] list [-v]
//	mocktools [-config file] [-data dir] call <tool> '<json input>'
//	mocktools [-config file] [-data dir] resolve [-strategies list] <catalog> <query>
//	mocktools [-config file] [-data dir] serve [-addr addr] [-watch]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/internal/config"
	"github.com/leofalp/mocktools/internal/httpapi"
	"github.com/leofalp/mocktools/internal/utils"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/observability"
	"github.com/leofalp/mocktools/providers/observability/slogobs"
	"github.com/leofalp/mocktools/providers/tool"
	"github.com/leofalp/mocktools/providers/tool/toolset"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app is everything a subcommand needs, built once from the configuration.
type app struct {
	cfg      *config.Config
	store    *dataset.Store
	matching tool.Matching
	registry *tool.Registry
	observer *slogobs.Observer
	stdout   io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mocktools", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	dataDir := fs.String("data", "", "directory overriding the embedded catalogs")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mocktools [-config file] [-data dir] <list|call|resolve|serve> [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	a, err := newApp(*configPath, *dataDir, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "mocktools: %v\n", err)
		return exitError
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
		err = a.list(rest, stderr)
	case "call":
		err = a.call(ctx, rest)
	case "resolve":
		err = a.resolve(rest, stderr)
	case "serve":
		err = a.serve(ctx, rest, stderr)
	default:
		fmt.Fprintf(stderr, "mocktools: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "mocktools: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "mocktools: %v\n", err)
		return exitError
	}
}

func newApp(configPath, dataDir string, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Dataset.Dir = dataDir
	}

	observer, err := newObserver(cfg.Log, stderr)
	if err != nil {
		return nil, err
	}

	d := dataset.Default()
	if cfg.Dataset.Dir != "" {
		if d, err = dataset.LoadDir(cfg.Dataset.Dir); err != nil {
			return nil, err
		}
	}
	store := dataset.NewStore(d)

	matching, err := cfg.ToolMatching()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    store,
		matching: matching,
		registry: toolset.New(store, matching),
		observer: observer,
		stdout:   stdout,
	}, nil
}

// newObserver logs to stderr so stdout carries only command output.
func newObserver(logCfg config.LogConfig, stderr io.Writer) (*slogobs.Observer, error) {
	level := slogobs.LevelFromEnv()
	if logCfg.Level != "" {
		parsed, err := slogobs.ParseLevel(logCfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	format := slogobs.FormatFromEnv()
	if logCfg.Format != "" {
		format = slogobs.ParseFormat(logCfg.Format)
	}

	return slogobs.New(
		slogobs.WithOutput(stderr),
		slogobs.WithLevel(level),
		slogobs.WithFormat(format),
	), nil
}

func (a *app) list(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "print descriptions, cost metrics and input schemas")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*verbose {
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		for _, d := range a.registry.List() {
			fmt.Fprintf(tw, "%s\t%s\n", d.Name, utils.FirstLine(d.Description, 80))
		}
		return tw.Flush()
	}

	for i, d := range a.registry.List() {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprintf(a.stdout, "%s\n  %s\n", d.Name, d.Description)
		if d.Metrics != nil {
			fmt.Fprintf(a.stdout, "  cost: %s\n", d.Metrics)
		}
		if d.Parameters != nil {
			schema, err := d.Parameters.JSONString(true)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "  input: %s\n", schema)
		}
	}
	return nil
}

func (a *app) call(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("mocktools call <tool> '<json input>'")
	}
	input := "{}"
	if len(args) == 2 {
		input = args[1]
	}

	ctx = observability.ContextWithObserver(ctx, a.observer)
	output, err := a.registry.Call(ctx, args[0], input)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, utils.JSONToString(json.RawMessage(output), true))
	return nil
}

func (a *app) resolve(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strategies := fs.String("strategies", "", "comma-separated strategies (alias,contains,word_overlap); empty means all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usageError("mocktools resolve [-strategies list] <catalog> <query> (catalogs: %s)",
			strings.Join(dataset.CatalogNames(), ", "))
	}

	mask := a.matching.Strategies
	if *strategies != "" {
		parsed, err := resolve.ParseStrategies(strings.Split(*strategies, ",")...)
		if err != nil {
			return err
		}
		mask = parsed
	}

	query := strings.Join(fs.Args()[1:], " ")
	res, err := a.store.Snapshot().Resolve(fs.Arg(0), query, mask, a.matching.MinWordOverlapRatio)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, utils.JSONToString(res, true))
	return nil
}

func (a *app) serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", a.cfg.Server.Addr, "listen address")
	watch := fs.Bool("watch", a.cfg.Dataset.Watch, "reload the data directory when it changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *watch {
		if a.cfg.Dataset.Dir == "" {
			return errors.New("-watch needs a data directory (-data or dataset.dir)")
		}
		watcher, err := dataset.NewWatcher(a.cfg.Dataset.Dir, a.store,
			dataset.WithDebounce(a.cfg.Dataset.Debounce),
			dataset.WithObserver(a.observer),
		)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				a.observer.Error(ctx, "dataset watcher stopped", observability.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewServer(a.registry, a.store, a.matching, a.observer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.observer.Info(ctx, "listening",
			observability.String("addr", *addr),
			observability.String(observability.AttrDatasetSource, a.store.Snapshot().Source),
			observability.String(observability.AttrDatasetVersion, a.store.Snapshot().Version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.observer.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
