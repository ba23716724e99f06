package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/sir_venger/images_lite/internal/app/resthttp"
	"github.com/sir_venger/images_lite/internal/config"
	"github.com/sir_venger/images_lite/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// main инициализирует HTTP-сервис хранения файлов и обеспечивает корректное завершение по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err = run(cfg, log); err != nil {
		log.Error("service stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.Gops {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			log.Warn("could not start gops agent", zap.Error(err))
		} else {
			defer agent.Close()
		}
	}

	// Каталог хранилища создаётся здесь; без него сервис не стартует.
	handler, _, err := resthttp.NewServer(cfg, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:     cfg.ListenAddr,
		Handler:  handler,
		ErrorLog: zap.NewStdLog(log.Named("http")),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("files_dir", cfg.FilesDir),
			zap.Int64("max_upload_bytes", cfg.MaxUploadBytes),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении листенера.
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	return eg.Wait()
}
