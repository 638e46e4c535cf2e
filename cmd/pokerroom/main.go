package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerroom/internal/registry"
	"github.com/lox/pokerroom/internal/server"
	"github.com/lox/pokerroom/internal/store"
)

var CLI struct {
	Config    string `short:"c" long:"config" default:"pokerroom.hcl" help:"Path to HCL configuration file"`
	Addr      string `short:"a" long:"addr" help:"Websocket address to bind to (overrides config)"`
	AdminAddr string `long:"admin-addr" help:"Admin API address to bind to (overrides config)"`
	LogLevel  string `short:"l" long:"log-level" help:"Log level (overrides config)"`
}

func main() {
	kctx := kong.Parse(&CLI)
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	if CLI.Addr != "" {
		cfg.Server.ListenAddr = CLI.Addr
	}
	if CLI.AdminAddr != "" {
		cfg.Server.AdminAddr = CLI.AdminAddr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		kctx.Exit(1)
	}
}

func run(cfg *server.Config, logger *log.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(logger)

	regOpts := []registry.Option{
		registry.WithLogger(logger),
		registry.WithSinkFactory(srv.SinkFor),
	}
	if flush, _ := cfg.FlushInterval(); flush > 0 {
		regOpts = append(regOpts, registry.WithFlushInterval(flush))
	}
	if grace, _ := cfg.IdleGrace(); grace > 0 {
		regOpts = append(regOpts, registry.WithIdleGrace(grace))
	}

	reg := registry.New(st, regOpts...)
	srv.AttachRegistry(reg)

	if err := reg.RestoreAll(ctx); err != nil {
		return fmt.Errorf("restore tables: %w", err)
	}

	// Configured tables are created only if the store didn't already bring
	// them back.
	for _, tc := range cfg.Tables {
		if _, exists := reg.Get(tc.Name); exists {
			continue
		}
		e, err := reg.Create(ctx, tc.TableConfigFor())
		if err != nil {
			return fmt.Errorf("create table %s: %w", tc.Name, err)
		}
		logger.Info("created table",
			"id", e.ID(),
			"name", tc.Name,
			"stakes", fmt.Sprintf("%d/%d", tc.SmallBlind, tc.BigBlind),
			"seats", tc.Seats)
	}

	reg.Run(ctx)
	defer reg.Close()

	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/ws", srv.HandleWS)

	wsServer := &http.Server{Addr: cfg.Server.ListenAddr, Handler: wsMux}
	adminServer := &http.Server{Addr: cfg.Server.AdminAddr, Handler: srv.AdminRouter()}

	logger.Info("starting pokerroom server",
		"addr", cfg.Server.ListenAddr,
		"adminAddr", cfg.Server.AdminAddr,
		"tables", len(reg.List()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := wsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := adminServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(gctx), 10*time.Second)
		defer shutdownCancel()
		_ = adminServer.Shutdown(shutdownCtx)
		return wsServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore picks Postgres when DATABASE_URL is set, in-memory otherwise
func openStore(ctx context.Context, logger *log.Logger) (store.Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store; tables will not survive restarts")
		return store.NewMemory(), nil
	}

	pg, err := store.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	logger.Info("connected to postgres")
	return pg, nil
}
