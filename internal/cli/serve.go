package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"formbuilder/internal/app"
	"formbuilder/internal/history"

	"github.com/spf13/cobra"
)

func ServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := app.LoadConfig()
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			if flags.historyDriver != "" {
				cfg.HistoryDriver = flags.historyDriver
			}
			if flags.historyDSN != "" {
				cfg.HistoryDSN = flags.historyDSN
			}
			cfg.CredentialsFile = flags.credentialsPath
			cfg.TokenFile = flags.tokenPath

			db, err := history.Open(ctx, history.Driver(cfg.HistoryDriver), cfg.HistoryDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			forms, err := flags.formsClient()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    cfg.HTTPAddr,
				Handler: app.NewRouter(cfg, forms, db),
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			cmd.Printf("formbuilder api listening on %s\n", cfg.HTTPAddr)
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: HTTP_ADDR or :8080)")
	return cmd
}
