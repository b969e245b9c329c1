package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/api"
	"github.com/insightdelivered/statement-points/internal/categorize"
	"github.com/insightdelivered/statement-points/internal/ingest"
	"github.com/insightdelivered/statement-points/internal/parser"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(e *env) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := categorize.FromConfig(ctx, e.cfg.Categorizer)
			if err != nil {
				if !errors.Is(err, categorize.ErrNotConfigured) {
					return err
				}
				e.log.Warn().Err(err).Msg("AI categorization disabled")
				c = nil
			}

			srv := api.New(api.Options{
				Ingest:      ingest.NewService(parser.Options{LineTolerance: e.cfg.PDF.LineTolerance}, e.log),
				Categorizer: c,
				BatchSize:   e.cfg.Categorizer.BatchSize,
				Rewards:     e.cfg.Rewards,
				BodyLimitMB: e.cfg.Server.BodyLimitMB,
				Log:         e.log,
			})
			app := srv.App()

			errCh := make(chan error, 1)
			go func() {
				e.log.Info().Str("addr", addr).Msg("listening")
				errCh <- app.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			e.log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(sctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
