package cmd

import (
	"fmt"
	"log"

	"donation-manager/core/config"
	"donation-manager/core/database"
	"donation-manager/core/logger"
	"donation-manager/feature/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sweepCmd removes transactions older than each user's retention window.
// Meant to run from cron; a single pass, then exit.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete transactions past their retention window",
	Long: `Deletes, for every user, the transactions older than that user's
data retention window. Users with a non-positive window are skipped.`,
	RunE: runSweep,
}

func init() {
	RootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
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

	removed, err := user.NewService(db, logg, cfg.Retention.DefaultDays).SweepExpired()
	if err != nil {
		return err
	}

	logg.Info("Sweep complete", zap.Int64("removed", removed))
	return nil
}
