package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/content"
	"github.com/meridian-legal/pfas-intake/internal/intake"
	"github.com/meridian-legal/pfas-intake/internal/server"
	"github.com/meridian-legal/pfas-intake/internal/submit"
	"github.com/meridian-legal/pfas-intake/internal/verdict"
	"github.com/meridian-legal/pfas-intake/internal/zone"
	"github.com/meridian-legal/pfas-intake/pkg/places"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the intake API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		library, err := loadContent()
		if err != nil {
			return err
		}

		lookup, closeCache, err := buildLookup()
		if err != nil {
			return err
		}
		defer closeCache()

		verdicts := verdict.NewService(zone.NewMatcher(catalog), lookup)

		sessions := intake.NewSessionManager(time.Duration(cfg.Intake.SessionTTLMins) * time.Minute)
		go sessions.Run(ctx, time.Duration(cfg.Intake.SweepIntervalMins)*time.Minute)

		var sink intake.Sink = submit.LogSink{}
		if cfg.Submit.WebhookURL != "" {
			sink = submit.NewWebhookSink(cfg.Submit.WebhookURL)
		}

		srv := server.New(verdicts, sessions, sink, catalog, library, server.Options{
			CORSOrigins:      cfg.Server.CORSOrigins,
			BatchConcurrency: cfg.Server.BatchConcurrency,
			BatchMaxCoords:   cfg.Server.BatchMaxCoords,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Handler(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("zones", catalog.Len()),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// loadCatalog returns the configured zone catalog, or the built-in reference
// zones when no file is configured.
func loadCatalog() (*zone.Catalog, error) {
	if cfg.Zones.Path == "" {
		return zone.DefaultCatalog(), nil
	}
	return zone.LoadCatalog(cfg.Zones.Path)
}

// loadContent returns the configured reference tables or the built-in set.
func loadContent() (*content.Library, error) {
	if cfg.Content.Path == "" {
		return content.Default(), nil
	}
	return content.Load(cfg.Content.Path)
}

// buildLookup assembles the place-lookup client with its optional cache.
// The returned closer releases the cache database.
func buildLookup() (*places.Client, func(), error) {
	provider := places.NewNominatim(
		places.WithBaseURL(cfg.Places.BaseURL),
		places.WithUserAgent(cfg.Places.UserAgent),
		places.WithRateLimit(cfg.Places.RateLimitRPS),
	)

	var opts []places.ClientOption
	closeCache := func() {}
	if cfg.Places.CacheEnabled {
		cache, err := places.NewCache(cfg.Places.CachePath, time.Duration(cfg.Places.CacheTTLDays)*24*time.Hour)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, places.WithCache(cache))
		closeCache = func() {
			if closeErr := cache.Close(); closeErr != nil {
				zap.L().Warn("closing place cache", zap.Error(closeErr))
			}
		}
	}

	return places.NewClient([]places.Provider{provider}, opts...), closeCache, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
