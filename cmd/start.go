package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listkit/core/archive"
	"listkit/core/config"
	"listkit/core/loader"
	"listkit/core/logger"
	"listkit/core/middleware/auth"
	"listkit/core/middleware/rayid"
	"listkit/core/store"

	"listkit/feature/board"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the board server",
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
		var repo *store.Store
		if db, err := store.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, persistence disabled", zap.Error(err))
		} else {
			repo = store.New(db)
			if err := repo.Migrate(); err != nil {
				logg.Fatal("Failed to migrate board tables", zap.Error(err))
			}
			logg.Info("Connected to board database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Archive (Optional)
		var arc *archive.Archive
		if client, err := archive.NewClient(cfg.Archive); err != nil {
			logg.Warn("Optional object storage setup failed, exports disabled", zap.Error(err))
		} else {
			arc = archive.NewArchive(client, cfg.Archive.Bucket)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := arc.EnsureBucket(ctx); err != nil {
				logg.Warn("Optional bucket check failed, exports disabled", zap.Error(err))
				arc = nil
			}
			cancel()
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(board.NewFeature(logg, repo, arc, cfg.Server.ReorderPolicy()))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
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
