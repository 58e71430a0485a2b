package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yndnr/memkv-go/internal/core/service"
	"github.com/yndnr/memkv-go/internal/infra/buildinfo"
	"github.com/yndnr/memkv-go/internal/infra/confloader"
	"github.com/yndnr/memkv-go/internal/infra/shutdown"
	"github.com/yndnr/memkv-go/internal/server/config"
	"github.com/yndnr/memkv-go/internal/server/httpserver"
	"github.com/yndnr/memkv-go/internal/server/redisserver"
	"github.com/yndnr/memkv-go/internal/storage/memory"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("memkv-server", flag.ContinueOnError)
	var (
		configFile  = fs.String("config", "", "Path to configuration file")
		addr        = fs.String("addr", "", "Client listen address (overrides server.redis.addr)")
		logLevel    = fs.String("log-level", "", "Log level (overrides log.level)")
		showVersion = fs.Bool("version", false, "Show version information")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Println(buildinfo.String())
		return nil
	}

	overrides := map[string]any{
		"server.redis.addr": *addr,
		"log.level":         *logLevel,
	}
	cfg, err := loadConfig(*configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logCloser, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()

	info := buildinfo.Get()
	log.Info("starting memkv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	startTime := time.Now()
	store := memory.New(memory.WithShardCount(cfg.Store.Shards))
	executor := service.NewExecutor(store)

	metrics := metric.NewRegistry()
	if err := metrics.Register(metric.NewStoreCollector(store)); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	ctx := context.Background()
	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout, shutdown.WithLogger(log))

	redisServer := redisserver.New(redisConfig(cfg), executor, log, metrics)
	if err := redisServer.Start(ctx); err != nil {
		return fmt.Errorf("start redis listener: %w", err)
	}
	shutdownHandler.OnShutdown("redis server", redisServer.Shutdown)

	if cfg.Server.HTTP.Enabled {
		adminServer := httpserver.New(cfg.Server.HTTP.Addr, httpserver.NewRouter(httpserver.RouterConfig{
			Metrics:   metrics,
			Store:     store,
			Logger:    log,
			StartTime: startTime,
		}))
		if err := adminServer.Start(); err != nil {
			// Shut down the listener that is already accepting clients.
			_ = redisServer.Shutdown(ctx)
			return fmt.Errorf("start admin listener: %w", err)
		}
		log.Info("admin server listening", "address", adminServer.Addr().String())
		shutdownHandler.OnShutdown("admin server", adminServer.Shutdown)
	}

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, overrides, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully", "keys", store.Len())
	return nil
}

// loadConfig loads configuration from defaults, file, environment and
// flag overrides.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger builds the process logger and installs it as the default.
// The returned closer releases the log file, if any.
func initLogger(cfg *config.ServerConfig) (logger.Logger, io.Closer, error) {
	var (
		output io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.Log.File != "" {
		f, err := logger.OpenFile(logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
		if err != nil {
			return nil, nil, err
		}
		output, closer = f, f
	}

	log, err := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    output,
		AddSource: cfg.Log.AddSource,
		Service:   "memkv-server",
	})
	if err != nil {
		closer.Close()
		return nil, nil, err
	}

	logger.SetDefault(log)
	return log, closer, nil
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Address:      r.Addr,
		IdleTimeout:  r.IdleTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
		RateLimit:    r.RateLimit,
		MaxBulkLen:   r.MaxBulkLen,
		MaxArrayLen:  r.MaxArrayLen,
	}
}

// watchConfig reapplies log.level whenever the config file changes.
// Other settings need a restart.
func watchConfig(path string, overrides map[string]any, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		reloadLogLevel(path, overrides, log)
	})
	watcher.StartAsync()
	return watcher, nil
}

func reloadLogLevel(path string, overrides map[string]any, log logger.Logger) {
	cfg, err := loadConfig(path, overrides)
	if err != nil {
		log.Warn("config reload rejected", "error", err)
		return
	}
	if cfg.Log.Level == logger.GetLevel() {
		return
	}
	logger.SetLevel(cfg.Log.Level)
	log.Info("log level changed", "level", cfg.Log.Level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
