package cmd

import (
	"fmt"
	"log"

	"donation-manager/core/config"
	"donation-manager/core/database"
	"donation-manager/core/logger"
	"donation-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileMode string

// reconcileCmd merges a secondary database file into the primary without
// going through the HTTP surface.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <file>",
	Short: "Merge a secondary database file into the primary",
	Long: `Merges a sqlite database file into the primary database table by table,
keyed by primary key.

Modes:
  recover  overwrite primary values that differ from the secondary
  import   fill only primary values that are missing

Examples:
  # Fill gaps from an old export
  donation-manager reconcile old_export.db --mode import

  # Restore from a backup, overwriting drifted values
  donation-manager reconcile backup.db --mode recover`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileMode, "mode", "import", "Merge mode: recover or import")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	mode, err := reconcile.ParseMode(reconcileMode)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	summary, err := reconcile.ReconcileFile(db, args[0], mode, logg)
	if err != nil {
		return err
	}

	logg.Info("Reconciliation complete",
		zap.String("mode", string(summary.Mode)),
		zap.Int("inserted", summary.Inserted()),
		zap.Int("updated", summary.Updated()),
	)
	for _, table := range summary.Tables {
		logg.Info("Table reconciled",
			zap.String("table", table.Table),
			zap.Int("inserted", table.Inserted),
			zap.Int("updated", table.Updated),
		)
	}
	return nil
}
