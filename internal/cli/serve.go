package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/beamframe/beamframe/internal/httpapi"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		setupPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the machine model as a JSON API",
		Long: `Serve the machine model as a JSON API.

The server starts from the setup file given with --setup (or the home
position) and accepts parameter updates over POST /api/parameters. It
shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParameters(setupPath)
			if err != nil {
				return err
			}
			api := httpapi.NewServer(params, c.Logger)

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return cmd.Context().Err()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&setupPath, "setup", "", "TOML setup file for the initial pose")

	return cmd
}
