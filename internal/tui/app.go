package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/mongofleet/internal/config"
	"github.com/dm/mongofleet/internal/engine"
	"github.com/dm/mongofleet/internal/model"
)

type viewMode int

const (
	viewFleet viewMode = iota
	viewReconnect
)

// App is the root Bubble Tea model. It owns the one display surface that
// every check cycle updates in place.
type App struct {
	monitor   *engine.Monitor
	endpoints []config.Endpoint
	interval  time.Duration

	// Check state
	checking  bool // true while a checkCmd goroutine is in-flight
	snapshot  *model.FleetSnapshot
	reconnect map[string]model.ReconnectRecord
	lastError error

	// Layout
	width, height int

	// UI state
	view     viewMode
	showHelp bool
}

// NewApp creates a new App over the given monitor and endpoint list.
func NewApp(monitor *engine.Monitor, endpoints []config.Endpoint, interval time.Duration) *App {
	return &App{
		monitor:   monitor,
		endpoints: endpoints,
		interval:  interval,
		checking:  true, // Init() always issues an immediate checkCmd
	}
}

// Init implements tea.Model. Starts the first check immediately on launch.
func (app *App) Init() tea.Cmd {
	return checkCmd(app.monitor, app.endpoints)
}

// Update implements tea.Model — the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case SnapshotMsg:
		app.checking = false
		app.snapshot = msg.Snapshot
		app.reconnect = msg.Reconnect
		app.lastError = nil
		return app, tickCmd(app.interval)

	case CheckErrorMsg:
		// A crashed cycle never blanks the last good snapshot; the next
		// scheduled cycle still runs.
		app.checking = false
		app.lastError = msg.Err
		return app, tickCmd(app.interval)

	case TickMsg:
		if app.checking {
			return app, nil
		}
		app.checking = true
		return app, checkCmd(app.monitor, app.endpoints)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.checking {
				return app, nil
			}
			app.checking = true
			return app, checkCmd(app.monitor, app.endpoints)
		case key.Matches(msg, keys.Tab):
			if app.view == viewFleet {
				app.view = viewReconnect
			} else {
				app.view = viewFleet
			}
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	var parts []string

	parts = append(parts, renderHeader(app))
	if o := renderOverview(app); o != "" {
		parts = append(parts, o)
	}
	if app.snapshot != nil {
		switch app.view {
		case viewReconnect:
			parts = append(parts, renderReconnectTable(app.reconnect, orderedNames(app.snapshot)))
		default:
			parts = append(parts, renderFleetTable(app.snapshot))
		}
	}
	parts = append(parts, renderFooter(app))

	return strings.Join(parts, "\n")
}

// tickCmd schedules the next check after duration d. The tick is issued only
// after the previous cycle settled, so cycles never overlap.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// checkCmd is a Bubble Tea command that runs one full check cycle and the
// reconnect-ledger read behind it.
func checkCmd(monitor *engine.Monitor, endpoints []config.Endpoint) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = CheckErrorMsg{Err: fmt.Errorf("check cycle: %v", r)}
			}
		}()

		snap := monitor.CheckAll(context.Background(), endpoints)
		return SnapshotMsg{
			Snapshot:  snap,
			Reconnect: monitor.ReconnectSnapshot(),
		}
	}
}

// orderedNames returns endpoint names in snapshot (configuration) order.
func orderedNames(snap *model.FleetSnapshot) []string {
	names := make([]string, 0, len(snap.Results))
	for i := range snap.Results {
		names = append(names, snap.Results[i].Name)
	}
	return names
}
