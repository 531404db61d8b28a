// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/pulse"
	"github.com/poiesic/pulse/ai"
	"github.com/poiesic/pulse/server"
	"github.com/poiesic/pulse/vector/qdrant"
	"github.com/urfave/cli/v2"
)

func main() {
	// Ignore a missing .env, direct environment still applies
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "pulse",
		Usage: "Feedback intelligence pipeline and dashboard API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8787",
						EnvVars: []string{"PULSE_ADDR"},
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./pulse-data",
						EnvVars: []string{"PULSE_DB"},
					},
					&cli.BoolFlag{
						Name:    "in-memory",
						Usage:   "Keep all data in memory (for local experiments)",
						EnvVars: []string{"PULSE_IN_MEMORY"},
					},
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "AI service host URL for both embedding and classification",
						EnvVars: []string{"PULSE_AI_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL (overrides ai-host)",
						EnvVars: []string{"PULSE_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "classifier-host",
						Usage:   "Classifier service host URL (overrides ai-host)",
						EnvVars: []string{"PULSE_CLASSIFIER_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						EnvVars: []string{"PULSE_EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "classifier-model",
						Usage:   "Classifier model name",
						EnvVars: []string{"PULSE_CLASSIFIER_MODEL"},
					},
					&cli.StringFlag{
						Name:    "qdrant-url",
						Usage:   "Qdrant server URL (empty uses the in-process index)",
						EnvVars: []string{"PULSE_QDRANT_URL"},
					},
					&cli.StringFlag{
						Name:    "qdrant-collection",
						Usage:   "Qdrant collection name",
						Value:   "feedback",
						EnvVars: []string{"PULSE_QDRANT_COLLECTION"},
					},
					&cli.DurationFlag{
						Name:    "search-timeout",
						Usage:   "Per-request search timeout",
						Value:   server.DefaultSearchTimeout,
						EnvVars: []string{"PULSE_SEARCH_TIMEOUT"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	aiConfig := buildAIConfig(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	serviceOpts := []pulse.ServiceOption{pulse.WithAIConfig(aiConfig)}
	if c.Bool("in-memory") {
		serviceOpts = append(serviceOpts, pulse.WithInMemoryStore())
	}
	if url := c.String("qdrant-url"); url != "" {
		serviceOpts = append(serviceOpts, pulse.WithQdrantIndex(qdrant.Config{
			URL:        url,
			APIKey:     os.Getenv("PULSE_QDRANT_API_KEY"),
			Collection: c.String("qdrant-collection"),
		}))
	}

	svc, err := pulse.NewService(c.String("db"), serviceOpts...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	pipeline, err := svc.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	searcher, err := svc.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	srv := server.NewServer(pipeline, searcher, svc.FeedbackRepository(),
		server.WithSearchTimeout(c.Duration("search-timeout")))

	httpServer := &http.Server{
		Addr:    c.String("addr"),
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

func buildAIConfig(c *cli.Context) *ai.Config {
	var opts []ai.ConfigOption
	if host := c.String("ai-host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("classifier-host"); host != "" {
		opts = append(opts, ai.WithClassifierHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("classifier-model"); model != "" {
		opts = append(opts, ai.WithClassifierModel(model))
	}

	if len(opts) == 0 {
		return ai.DefaultConfig()
	}
	return ai.NewConfig(opts...)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
