package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/vibelist-labs/vibelist/internal/adapters/groq"
	"github.com/vibelist-labs/vibelist/internal/adapters/rest"
	"github.com/vibelist-labs/vibelist/internal/adapters/spotify"
	"github.com/vibelist-labs/vibelist/internal/auth"
	"github.com/vibelist-labs/vibelist/internal/config"
	"github.com/vibelist-labs/vibelist/internal/core/services"
	"github.com/vibelist-labs/vibelist/internal/store"
)

// searchPace bounds catalog search calls during resolution.
const searchPace = 120 * time.Millisecond

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "vibelist",
	})

	cmd := &cli.Command{
		Name:  "vibelist",
		Usage: "turn a vibe into a Spotify playlist",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config.toml",
						Usage: "path to the TOML config file",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, c.String("config"), logger)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal(err)
	}
}

func serve(ctx context.Context, configPath string, logger *log.Logger) error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Driven adapters.
	catalog := spotify.NewClient(spotify.NewRetryingHTTPClient(), spotify.DefaultBaseURL, logger)
	llm := groq.NewClient("", cfg.Groq.APIKey, cfg.Groq.Model)
	if cfg.Groq.APIKey == "" {
		logger.Warn("no Groq API key configured, heuristic fallbacks active")
	}

	// Process-scoped state.
	states := store.NewAuthStates()
	creds := store.NewCredentials()
	taste := store.NewTaste()

	// Core services.
	flow := auth.NewFlow(auth.OAuthConfig(cfg.Spotify, auth.Endpoint), states, creds, catalog, logger)
	parser := services.NewRuleParser(llm, logger)
	writer := services.NewWriter(catalog, creds, logger)
	orch := services.NewOrchestrator(
		creds, taste, catalog,
		services.NewSuggester(llm, logger),
		services.NewResolver(catalog, rate.NewLimiter(rate.Every(searchPace), 1), logger),
		services.NewFeatureFetcher(catalog, logger),
		writer,
		logger,
	)

	handler := rest.NewHandler(rest.Deps{
		Flow:      flow,
		Parser:    parser,
		Orch:      orch,
		Writer:    writer,
		Catalog:   catalog,
		Creds:     creds,
		Taste:     taste,
		WebOrigin: cfg.Server.WebOrigin,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr())
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
