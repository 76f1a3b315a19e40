package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/quadviz/quadviz/internal/server"
	"github.com/quadviz/quadviz/pkg/cache"
	"github.com/quadviz/quadviz/pkg/store"
)

// newServeCmd creates the serve command running the HTTP preview server.
func newServeCmd() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run the HTTP preview server.

POST a tree description to /layouts to compute and store its layout,
then fetch it as JSON or rendered SVG. Documents live in memory unless
--mongo points at a MongoDB instance; rendered artifacts are cached in
Redis when --redis is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var st store.Store
			if mongoURL != "" {
				s, err := store.NewMongoStore(ctx, mongoURL)
				if err != nil {
					return err
				}
				st = s
				logger.Info("using mongodb store", "uri", mongoURL)
			} else {
				st = store.NewMemoryStore()
				logger.Info("using in-memory store")
			}
			defer st.Close(context.Background())

			var c cache.Cache
			if redisURL != "" {
				rc, err := cache.NewRedisCache(ctx, redisURL)
				if err != nil {
					return err
				}
				c = rc
				logger.Info("using redis artifact cache", "addr", redisURL)
			} else {
				c = cache.NewNullCache()
			}
			defer c.Close()

			srv := server.New(server.Config{
				Store:  st,
				Cache:  c,
				Keyer:  cache.NewScopedKeyer(nil, "serve"),
				Logger: logger,
			})

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpSrv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis address for artifact caching (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURL, "mongo", "", "mongodb connection URI for document storage")

	return cmd
}
