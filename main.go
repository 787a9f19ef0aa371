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

	"eTEats_web/config"
	"eTEats_web/handlers"
	"eTEats_web/loader"
	"eTEats_web/logging"
	"eTEats_web/render"
	"eTEats_web/store"
	"eTEats_web/web"

	"github.com/apex/log"
	"github.com/rs/cors"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logging.Init(cfg.LogLevel)

	if err := newApp(&cfg).Run(ctx, os.Args); err != nil {
		log.WithError(err).Error("recipes")
		return 1
	}
	return 0
}

func newApp(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "fetch, cache and show recipe cards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "persistent store: memory, sqlite, firestore or s3",
				Value: cfg.Store,
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "URL the recipe sources are resolved against",
				Value: cfg.BaseURL,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg.Store = cmd.String("store")
			cfg.BaseURL = cmd.String("base-url")
			return ctx, cfg.Validate()
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the recipe card page",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address", Value: cfg.Addr},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg.Addr = cmd.String("addr")
					return serve(ctx, *cfg)
				},
			},
			{
				Name:  "list",
				Usage: "print the recipe cards to the terminal",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withLoader(ctx, *cfg, func(l *loader.Loader) error {
						recipes, err := l.Recipes(ctx)
						if err != nil {
							log.WithError(err).Error("loading recipes")
						}
						return render.Terminal(os.Stdout, recipes)
					})
				},
			},
			{
				Name:  "clear",
				Usage: "delete the stored recipes so the next load refetches",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withLoader(ctx, *cfg, func(l *loader.Loader) error {
						if err := l.Clear(ctx); err != nil {
							return err
						}
						log.Info("stored recipes cleared")
						return nil
					})
				},
			},
		},
	}
}

// withLoader opens the configured store, builds a loader and closes the
// store once fn returns.
func withLoader(ctx context.Context, cfg config.Config, fn func(*loader.Loader) error) error {
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	fetcher, err := loader.NewHTTPFetcher(cfg.BaseURL, cfg.HTTPTimeout)
	if err != nil {
		return err
	}
	return fn(loader.New(cfg.Sources, fetcher, s))
}

func serve(ctx context.Context, cfg config.Config) error {
	return withLoader(ctx, cfg, func(l *loader.Loader) error {
		router := handlers.NewRouter(l, web.Assets, cfg.Sources)

		// Enable CORS for all origins
		c := cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		})

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           otelhttp.NewHandler(c.Handler(router), "recipes"),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			log.WithFields(log.Fields{"addr": cfg.Addr, "store": cfg.Store}).Info("server starting")
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
