package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/identity"
	"github.com/danielwaldman/cadence/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addrFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Auth.JWTSecret == "" {
				return fmt.Errorf("serve requires auth.jwt_secret (or CADENCE_JWT_SECRET)")
			}

			addr := app.Config.Server.Addr
			if addrFlag != "" {
				addr = addrFlag
			}

			verifier := identity.NewVerifier(app.Config.Auth.JWTSecret, app.Config.Auth.JWTIssuer)
			handler := server.NewHandler(app.Source, app.Items, app.Logger)
			router := server.NewRouter(handler, verifier, app.Logger, app.Config.Server.CORSOrigins)

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("listening", zap.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides config)")
	return cmd
}
