package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	apix "github.com/tanpawarit/catalog-chatbot/agent/api"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	configx "github.com/tanpawarit/catalog-chatbot/pkg/config"
)

var (
	serveAddr    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		appCfg, err := configx.New[apix.Config]("APP")
		if err != nil {
			return err
		}
		if serveAddr != "" {
			appCfg.Addr = serveAddr
		}

		rt, err := newServices(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		if serveMigrate {
			version, err := catalogx.Migrate(rt.db.DB, catalogx.MigrateUp)
			if err != nil {
				return err
			}
			log.Info().Uint("version", version).Msg("catalog schema migrated")
		}

		srv, err := apix.NewServer(*appCfg, rt.chatbot, rt.store)
		if err != nil {
			return err
		}
		httpSrv := srv.HTTPServer()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", httpSrv.Addr).Msg("HTTP server listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides APP_ADDR")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending schema migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
