package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/dm/mongofleet/internal/client"
	"github.com/dm/mongofleet/internal/config"
	"github.com/dm/mongofleet/internal/engine"
	"github.com/dm/mongofleet/internal/model"
	"github.com/dm/mongofleet/internal/tui"
)

type runMode int

const (
	modeTUI runMode = iota
	modeWatch
	modeOnce
)

// parseMode maps the --mode flag value to a run mode.
func parseMode(s string) (runMode, error) {
	switch s {
	case "tui", "":
		return modeTUI, nil
	case "watch":
		return modeWatch, nil
	case "once":
		return modeOnce, nil
	default:
		return modeTUI, fmt.Errorf("unknown mode %q (must be tui, watch, or once)", s)
	}
}

// exitCode maps a snapshot to the once-mode process exit code: 0 when the
// whole fleet is online, 1 otherwise.
func exitCode(snap *model.FleetSnapshot) int {
	if snap.Status == model.AllOnline {
		return 0
	}
	return 1
}

func main() {
	var (
		configPath = flag.String("config", "mongofleet.yaml", "path to the endpoints config file")
		interval   = flag.Duration("interval", 0, "check interval override (e.g. 30s, 2m)")
		mode       = flag.String("mode", "tui", "run mode: tui, watch, or once")
		logLevel   = flag.String("log-level", "info", "log level: trace, debug, info, warn, error")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: mongofleet [--config mongofleet.yaml] [--mode tui|watch|once]\n\n")
		fmt.Fprintf(os.Stderr, "examples:\n")
		fmt.Fprintf(os.Stderr, "  mongofleet --config fleet.yaml\n")
		fmt.Fprintf(os.Stderr, "  mongofleet --config fleet.yaml --mode watch --log-level debug\n")
		fmt.Fprintf(os.Stderr, "  mongofleet --config fleet.yaml --mode once\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	m, err := parseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	checkInterval := cfg.Interval()
	if *interval > 0 {
		checkInterval = *interval
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mongofleet",
		Level:  hclog.LevelFromString(*logLevel),
		Output: os.Stderr,
	})
	if m == modeTUI {
		// The TUI owns the terminal; logs would corrupt the view.
		logger = hclog.NewNullLogger()
	}

	os.Exit(run(m, cfg, checkInterval, logger))
}

// run wires the monitor and executes the selected mode, returning the
// process exit code. Close runs on every path, sweeping connections an
// interrupted cycle left open.
func run(m runMode, cfg *config.Config, interval time.Duration, logger hclog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger := engine.NewLedger()
	monitor := engine.NewMonitor(client.NewMongoDialer(), ledger, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := monitor.Close(closeCtx); err != nil {
			logger.Warn("shutdown cleanup failed", "error", err)
		}
	}()

	switch m {
	case modeOnce:
		snap := monitor.CheckAll(ctx, cfg.Endpoints)
		fmt.Print(tui.RenderOnce(snap, monitor.ReconnectSnapshot()))
		return exitCode(snap)

	case modeWatch:
		for _, ep := range cfg.Endpoints {
			logger.Info("monitoring endpoint", "endpoint", ep.Name, "uri", ep.Redacted(), "timeout", ep.Timeout())
		}
		pub := engine.NewLogPublisher(logger)
		w := engine.NewWatcher(monitor, cfg.Endpoints, interval, pub, logger)
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("watcher stopped", "error", err)
			return 1
		}
		return 0

	default:
		app := tui.NewApp(monitor, cfg.Endpoints, interval)
		program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}
}
