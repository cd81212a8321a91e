package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"proc-loader/core/loader"
	"proc-loader/core/logger"
	"proc-loader/core/middleware/auth"
	"proc-loader/core/middleware/rayid"
	"proc-loader/feature/integrity"
	"proc-loader/feature/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resource API server",
	Long:  `Starts the HTTP server exposing resource loading and procedure management.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := newApp(rt)

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout())
	},
}

// newApp builds the Fiber application with middleware and features.
func newApp(rt *runtime) *fiber.App {
	logg := rt.logger
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID must be first to trace everything
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

	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: []string{metricsPath}}))

	if rt.cfg.Server.Metrics {
		app.Get(metricsPath, adaptor.HTTPHandler(rt.metrics.Handler()))
	}

	mgr := loader.NewManager(logg)
	mgr.Register(resource.NewFeature(rt.host, rt.plugin, logg))
	mgr.Register(integrity.NewFeature(rt.host, rt.store, rt.cfg.Storage.Bucket, rt.cfg.Integrity, logg))
	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	return app
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
