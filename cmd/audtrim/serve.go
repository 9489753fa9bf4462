// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audtrim/internal/config"
	"github.com/ik5/audtrim/internal/server"
	"github.com/ik5/audtrim/internal/storage"
	"github.com/ik5/audtrim/trim"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the trim pipeline over HTTP",
		Long: `Serve the trim pipeline over HTTP. Settings come from the environment:
AUDTRIM_PORT, AUDTRIM_MAX_UPLOAD_BYTES, AUDTRIM_DECODE_TIMEOUT,
AUDTRIM_SESSION_TTL, AUDTRIM_MAX_SESSIONS, AUDTRIM_ARTIFACT_DIR, AUDTRIM_PUBLIC_URL, AUDTRIM_S3_BUCKET, AUDTRIM_S3_REGION,
AUDTRIM_S3_ENDPOINT, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, LOG_FORMAT and
LOG_LEVEL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting audtrim",
		slog.Int("port", cfg.Port),
		slog.String("log_format", cfg.LogFormat),
		slog.String("log_level", cfg.LogLevel),
		slog.Int64("max_upload_bytes", cfg.MaxUploadBytes),
		slog.Duration("decode_timeout", cfg.DecodeTimeout),
		slog.Duration("session_ttl", cfg.SessionTTL),
		slog.Int("max_sessions", cfg.MaxSessions),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	routes := server.DefaultConfig()

	// Initialize storage
	var publisher trim.Publisher
	if cfg.S3Enabled() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			PublicURL:       publicURLForS3(cfg.PublicURL),
		})
		if err != nil {
			return fmt.Errorf("create S3 storage: %w", err)
		}
		publisher = s3Store
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
	} else {
		localStore, err := storage.NewLocalStore(cfg.ArtifactDir, cfg.PublicURL)
		if err != nil {
			return fmt.Errorf("create local storage: %w", err)
		}
		publisher = localStore
		routes.ArtifactDir = localStore.Dir()
		routes.ArtifactPath = cfg.PublicURL
		logger.Info("local storage configured",
			slog.String("dir", localStore.Dir()),
			slog.String("public_url", cfg.PublicURL),
		)
	}

	trimmer := trim.New(trim.WithLogger(logger))
	handlers := server.NewHandlers(trimmer, publisher, logger,
		server.WithMaxUploadBytes(cfg.MaxUploadBytes),
		server.WithDecodeTimeout(cfg.DecodeTimeout),
		server.WithSessionTTL(cfg.SessionTTL),
		server.WithMaxSessions(cfg.MaxSessions),
	)
	router := server.NewRouter(handlers, logger, routes)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go handlers.ExpireSessions(sweepCtx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute, // large uploads
		WriteTimeout:      cfg.DecodeTimeout + time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown handling
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			slog.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case sig := <-shutdownCh:
		logger.Info("received shutdown signal",
			slog.String("signal", sig.String()),
		)
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	// withdraw what the open sessions still hold
	stopSweep()
	handlers.Close(shutdownCtx)

	logger.Info("server stopped gracefully")
	return nil
}

// publicURLForS3 keeps an absolute AUDTRIM_PUBLIC_URL (a CDN in front of
// the bucket) and drops the default path, which only makes sense for the
// local store.
func publicURLForS3(u string) string {
	if len(u) > 0 && u[0] == '/' {
		return ""
	}
	return u
}
