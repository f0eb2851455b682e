package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/globe/internal/cache"
	"github.com/five82/globe/internal/config"
	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/loader"
	"github.com/five82/globe/internal/netstatus"
	"github.com/five82/globe/internal/prefs"
	"github.com/five82/globe/internal/state"
	"github.com/five82/globe/internal/ui"
)

// Options configure the globe application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/globe/prefs.toml
	CacheDir   string
	Endpoint   string
	Refresh    bool // clear the cached list before loading
	Verbose    bool
}

// runtime holds the wired components shared by the TUI and the CLI.
type runtime struct {
	cfg     config.Config
	logger  *zap.Logger
	cache   *cache.Dir
	client  *countries.Client
	monitor *netstatus.Monitor
	store   *state.Store
	loader  *loader.Loader
}

func newRuntime(opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(opts.CacheDir); v != "" {
		cfg.CacheDir = v
	}

	logger, err := newLogger(cfg.LogFile, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dir, err := cache.New(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	if opts.Refresh {
		if err := dir.Clear(loader.CacheKey); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
		logger.Info("cleared cached list", zap.String("dir", dir.Path()))
	}

	client, err := countries.NewClient(cfg.Endpoint, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init countries client: %w", err)
	}

	prober := netstatus.DialProber{Address: netstatus.AddressFor(client.Endpoint())}
	monitor := netstatus.NewMonitor(prober, cfg.ProbeInterval, logger.Named("netstatus"))
	store := &state.Store{}

	logger.Info("starting",
		zap.String("endpoint", client.Endpoint().String()),
		zap.String("cache_dir", dir.Path()),
		zap.Duration("probe_interval", cfg.ProbeInterval),
	)

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		cache:   dir,
		client:  client,
		monitor: monitor,
		store:   store,
		loader:  loader.NewLoader(store, dir, client, monitor, logger.Named("loader")),
	}, nil
}

// close stops the monitor, waits for its goroutine and flushes the log.
func (r *runtime) close() {
	r.monitor.Stop()
	<-r.monitor.Done()
	_ = r.logger.Sync()
}

// Run boots the globe TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	userPrefs := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start loading before the first frame so a cached list shows at once.
	rt.loader.Start(ctx)

	err = ui.Run(ui.Options{
		Context:      ctx,
		Store:        rt.store,
		Loader:       rt.loader,
		OpenSettings: netstatus.OpenSettings,
		Logger:       rt.logger.Named("ui"),
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
