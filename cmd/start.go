package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"donation-manager/core/config"
	"donation-manager/core/database"
	"donation-manager/core/exchange"
	"donation-manager/core/loader"
	"donation-manager/core/logger"
	"donation-manager/core/middleware/rayid"
	"donation-manager/core/server"
	"donation-manager/core/storage"

	"donation-manager/feature/admin"
	"donation-manager/feature/backup"
	"donation-manager/feature/kofi"
	kofimodels "donation-manager/feature/kofi/models"
	"donation-manager/feature/user"
	usermodels "donation-manager/feature/user/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "donation-manager/docs/swagger"
)

// @title Ko-fi Donation API
// @version 1.0
// @description API for receiving and querying Ko-fi donation webhooks.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the donation API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidEnvironment() {
			logg.Fatal("Invalid environment", zap.String("environment", cfg.Server.Environment))
		}
		// The placeholder secret guards every admin endpoint, so it only
		// passes on a local deployment.
		if cfg.Server.Environment != server.EnvironmentLocal && cfg.Server.HasDefaultAdminKey() {
			logg.Fatal("Refusing to start with the default admin key outside the local environment")
		}

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&kofimodels.Transaction{}, &usermodels.User{}); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}

		// 4. Initialize Storage (Optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 6. Initialize Services and Features
		users := user.NewService(db, logg, cfg.Retention.DefaultDays)
		donations := kofi.NewService(db, users, exchange.NewClient(cfg.Exchange), logg)
		backups := backup.NewService(db, cfg.Database, store, cfg.Storage.Bucket, cfg.Server.ProjectName, logg)

		mgr := loader.NewManager()
		mgr.Register(kofi.NewFeature(donations))
		mgr.Register(user.NewFeature(users))
		mgr.Register(backup.NewFeature(backups, cfg.Server.AdminKey))
		mgr.Register(admin.NewFeature(db, cfg.Server.AdminKey, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("project", cfg.Server.ProjectName),
				zap.String("port", cfg.Server.Port),
				zap.String("environment", cfg.Server.Environment),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
