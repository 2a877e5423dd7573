// Package cmd implements the catalogbot command line: the HTTP server, schema
// migrations and a one-shot question runner.
package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/catalog-chatbot/pkg/config"
	logx "github.com/tanpawarit/catalog-chatbot/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "catalogbot",
	Short:         "Catalog chatbot backend",
	Long:          `catalogbot answers supplier and product questions over a PostgreSQL catalog, routing each request through an entity extraction and lookup graph.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)

		logConf, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		logx.Init(*logConf)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("catalogbot failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file")
}
