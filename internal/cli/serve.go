package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/strukto/strukto/internal/api"
	"github.com/strukto/strukto/pkg/cache"
	"github.com/strukto/strukto/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the structogram HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.serveCache(ctx, redisAddr, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := pipeline.NewRunner(store, nil, c.Logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.New(runner, c.Logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Infof("Listening on %s", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				c.Logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return ctx.Err()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (defaults to the file cache)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveCache builds the cache backend for the server. Redis is used
// when an address is given, otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Infof("Using redis cache at %s", redisAddr)
		return rc, nil
	}
	return newCache(false), nil
}
