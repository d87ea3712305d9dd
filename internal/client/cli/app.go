package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
	"github.com/dmitrijs2005/itemkeeper/internal/client/editor"
	"github.com/dmitrijs2005/itemkeeper/internal/client/services"
	"github.com/dmitrijs2005/itemkeeper/internal/client/store"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"golang.org/x/term"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const requestTimeout = 10 * time.Second

// pinger reports whether the backend is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	remote client.Client
	items  services.ItemService
	editor *editor.Editor
	probe  pinger

	modeMu sync.RWMutex
	mode   Mode

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	closers     []func() error
}

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.Logger, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	remote := client.NewHTTPClient(c.ServerURL, c.ListLimit, &http.Client{Timeout: requestTimeout}, logger)

	opts := services.DefaultOptions()
	opts.StaleTime = c.StaleTime
	opts.Retries = c.Retries
	opts.RetryDelay = c.RetryDelay
	if c.TrustIDs {
		opts.Policy.Create.OverrideID = false
	}
	items := services.NewItemService(remote, opts, logger)

	a := &App{
		config:      c,
		logger:      logger.With("module", "cli"),
		remote:      remote,
		items:       items,
		editor:      editor.New(store.NewSelectionStore(), items),
		mode:        ModeDisabled,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}

	if s, ok := logger.(interface{ Sync() error }); ok {
		a.closers = append(a.closers, s.Sync)
	}

	if c.HealthAddr != "" {
		probe, err := client.NewHealthProbe(c.HealthAddr)
		if err != nil {
			return nil, fmt.Errorf("health probe: %w", err)
		}
		a.probe = probe
		a.mode = ModeOffline
		a.closers = append(a.closers, probe.Close)
	}

	return a, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
// Refreshes still pending when Run returns are discarded.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close(ctx)
	defer cancel()

	if a.probe != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	fmt.Fprintln(a.out, "Item client (type 'help' for commands)")
	_ = a.List(ctx)

	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Debug(ctx, "close failed", "error", err)
		}
	}
}

// StartOnlineStatusWatcher probes the health endpoint every interval and
// flips the mode between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.probe.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
