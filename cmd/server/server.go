package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/dungeon-api/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/layout"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/layouts"
)

var (
	httpPort  int
	redisAddr string
	inMemory  bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the dungeon API HTTP server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 8080, "HTTP server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for layout storage")
	serverCmd.Flags().BoolVar(&inMemory, "inmemory", false, "use in-memory layout storage instead of Redis")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	layoutRepo, err := buildLayoutRepo()
	if err != nil {
		return fmt.Errorf("failed to create layout repository: %w", err)
	}

	layoutService, err := layout.NewOrchestrator(&layout.Config{
		LayoutRepo:  layoutRepo,
		IDGenerator: idgen.NewUUID("layout"),
		EventBus:    events.NewBus(),
	})
	if err != nil {
		return fmt.Errorf("failed to create layout orchestrator: %w", err)
	}

	layoutHandler, err := v1alpha1.NewLayoutHandler(&v1alpha1.LayoutHandlerConfig{
		LayoutService: layoutService,
	})
	if err != nil {
		return fmt.Errorf("failed to create layout handler: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	layoutHandler.RegisterRoutes(router)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", httpPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func buildLayoutRepo() (layouts.Repository, error) {
	if inMemory {
		return layouts.NewInMemory(nil), nil
	}

	client, err := redisclient.NewClient(redisAddr, nil)
	if err != nil {
		return nil, err
	}
	return layouts.NewRedis(&layouts.RedisConfig{Client: client})
}
