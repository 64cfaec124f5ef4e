package items

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-barry/items/core"
	"github.com/go-barry/items/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RuntimeConfig struct {
	Env        string
	Port       int
	ConfigPath string
}

// App is a fully wired server ready to be served.
type App struct {
	Addr    string
	Handler http.Handler
	Config  core.Config
	Logger  *zap.Logger

	closers []io.Closer
}

var Exit = os.Exit

const shutdownTimeout = 10 * time.Second

// Serve runs handler on addr until ctx is done, then drains in-flight
// requests.
var Serve = func(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

var Start = func(cfg RuntimeConfig) {
	app, err := BuildServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Startup failed: %v\n", err)
		Exit(1)
		return
	}

	fmt.Printf("✅ Items running at http://localhost%s (%s, %s store)\n", app.Addr, app.Config.Env, app.Config.Storage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = Serve(ctx, app.Addr, app.Handler)
	stop()

	if closeErr := app.Close(); closeErr != nil {
		app.Logger.Warn("shutdown cleanup failed", zap.Error(closeErr))
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Server failed: %v\n", err)
		Exit(1)
	}
}

func BuildServer(cfg RuntimeConfig) (*App, error) {
	path := cfg.ConfigPath
	if path == "" {
		path = core.DefaultConfigFile
	}

	config, err := core.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	// ITEMS_ENV beats the env implied by the dev/prod command; --port
	// beats PORT.
	if cfg.Env != "" && os.Getenv("ITEMS_ENV") == "" {
		config.Env = cfg.Env
	}
	if cfg.Port != 0 {
		config.Port = cfg.Port
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := core.NewLogger(*config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &App{
		Addr:   fmt.Sprintf(":%d", config.Port),
		Config: *config,
		Logger: logger,
	}

	s, err := store.Open(config.Storage, config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.closers = append(app.closers, s)

	seed, err := s.MaxID(context.Background())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("read highest id: %w", err)
	}
	ids, err := store.NewAllocator(config.IDs, seed)
	if err != nil {
		app.Close()
		return nil, err
	}

	ui, err := core.NewUI(*config)
	if err != nil {
		app.Close()
		return nil, err
	}

	feed := core.NewFeed(logger)
	app.closers = append(app.closers, feed)
	router := core.NewRouter(*config, core.RouterDeps{
		Store:  s,
		IDs:    ids,
		UI:     ui,
		Feed:   feed,
		Logger: logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc(core.FeedPath, feed.Handler)
	mux.Handle("/", router)

	if config.Env == "dev" && config.UIFile != "" {
		watcher, err := core.WatchUI(config.UIFile, ui, func() {
			feed.Publish(core.Event{Type: core.EventReload})
		}, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, watcher)
	}

	app.Handler = core.WithRequestLog(logger, mux)

	logger.Info("server configured",
		zap.String("addr", app.Addr),
		zap.String("env", config.Env),
		zap.String("storage", config.Storage),
		zap.String("ids", config.IDs),
		zap.Int64("seed", seed))

	return app, nil
}

// Close releases the store, the feed clients and the watcher in reverse
// order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
