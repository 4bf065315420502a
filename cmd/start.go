package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-doctor/core/config"
	"library-doctor/core/loader"
	"library-doctor/core/logger"
	"library-doctor/core/metrics"
	"library-doctor/core/middleware/auth"
	"library-doctor/core/middleware/rayid"
	"library-doctor/core/storage"
	"library-doctor/feature/collection"
	"library-doctor/feature/history"
	"library-doctor/feature/integrity"

	_ "library-doctor/docs/swagger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
// @title Library Doctor API
// @version 1.0
// @description Reconciles a DJ library document with the music directory and publishes the results.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the library doctor server",
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

		// 3. Connect to Database (Optional)
		db, _ := openDatabase(cfg.Database, logg, false)

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// Register Features
		docs := newCollectionService(cfg, store, logg, db)

		mgr := loader.NewManager(logg)
		mgr.Register(collection.NewFeature(docs))
		mgr.Register(integrity.NewFeature(integrity.NewService(store, cfg.Storage.Bucket, cfg.Library.PublishPrefix, logg, db, docs)))
		mgr.Register(history.NewFeature(db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id attached
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

		// 3. Metrics (Public scrape endpoint)
		app.Use(metrics.Middleware(metrics.DefaultMiddlewareConfig()))
		app.Get("/metrics", metrics.Handler())

		// 4. Swagger (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 5. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/metrics"}}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("address", cfg.Server.Address()),
				zap.String("document", cfg.Library.Document),
				zap.String("music_dir", cfg.Library.MusicDir),
				zap.Strings("extensions", cfg.Library.ExtensionSet().Sorted()),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
