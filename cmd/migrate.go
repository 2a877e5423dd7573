package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the catalog schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(catalogx.MigrateUp), string(catalogx.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := catalogx.MigrateUp
		if len(args) == 1 {
			direction = catalogx.MigrateDirection(args[0])
		}

		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := catalogx.Migrate(db.DB, direction)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("Migrated %s, schema version %d", direction, version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
