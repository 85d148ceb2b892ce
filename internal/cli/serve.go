package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/internal/api"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		store      string
		sessionDir string
		ttl        time.Duration
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  POST   /v1/layouts                    place tags, return layout JSON
  POST   /v1/render?format=svg          place tags, return an artifact
  POST   /v1/sessions                   create an interactive session
  GET    /v1/sessions/{id}              session with its placed tags
  POST   /v1/sessions/{id}/rectangles   place one rectangle
  GET    /v1/sessions/{id}/render       render the session
  DELETE /v1/sessions/{id}              drop the session
  GET    /healthz                       liveness and build info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := c.Config.Server
			flags := cmd.Flags()
			if !flags.Changed("addr") && srv.Addr != "" {
				addr = srv.Addr
			}
			if !flags.Changed("store") && srv.Store != "" {
				store = srv.Store
			}
			if !flags.Changed("session-dir") && srv.SessionDir != "" {
				sessionDir = srv.SessionDir
			}
			if !flags.Changed("session-ttl") && srv.SessionTTL.Duration > 0 {
				ttl = srv.SessionTTL.Duration
			}
			return c.runServe(cmd.Context(), addr, store, sessionDir, ttl, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&store, "store", storeMemory, "session store: memory, file, redis")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "directory for the file session store")
	cmd.Flags().DurationVar(&ttl, "session-ttl", 24*time.Hour, "idle session lifetime")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, store, sessionDir string, ttl time.Duration, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	sessions, err := c.newStore(store, sessionDir)
	if err != nil {
		runner.Close()
		return fmt.Errorf("open session store: %w", err)
	}

	srv := api.New(runner, sessions,
		api.WithLogger(c.Logger),
		api.WithSessionTTL(ttl),
	)
	defer srv.Close()

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	printDetail("sessions: %s, ttl %s", store, ttl)
	return srv.ListenAndServe(ctx, addr)
}
