// server.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/traveldocs/pkg/config"
	"github.com/Abraxas-365/traveldocs/pkg/logx"
	"github.com/Abraxas-365/traveldocs/pkg/server"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// 1. Load Configuration
	config.LoadDotEnv(".env")
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger with config
	logx.SetLevel(logx.ParseLevel(cfg.Server.LogLevel))

	logx.Info("🚀 Starting Travel Docs API Server...")
	logx.Infof("Environment: %s", cfg.Environment)

	// 3. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Cleanup()

	// 4. Create Fiber App with routes
	app := server.New(cfg, func() fiber.Map {
		return fiber.Map{"conversations": container.TravelService.ConversationCount()}
	}, container.TravelHandlers)

	if cfg.Server.AllowsAnyOrigin() && cfg.Server.CORSAllowCredentials && !cfg.IsDevelopment() {
		logx.Warn("⚠️  CORS allows every origin with credentials; set CORS_ORIGINS outside development")
	}

	printRouteSummary()

	// 5. Start Server with Graceful Shutdown
	startServer(app, cfg)
}

// printRouteSummary prints a summary of registered routes
func printRouteSummary() {
	logx.Info("📋 Route Summary:")
	logx.Info("   ├─ Health: GET /health")
	logx.Info("   ├─ Info: GET /")
	logx.Info("   └─ Travel info: POST /travel-info/")
}

// startServer starts the server with graceful shutdown
func startServer(app *fiber.App, cfg *config.Config) {
	port := fmt.Sprintf("%d", cfg.Server.Port)

	go func() {
		logx.Info(strings.Repeat("=", 71))
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)
		logx.Infof("🔒 Environment: %s", cfg.Environment)
		logx.Info(strings.Repeat("=", 71))

		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app)
}

// gracefulShutdown handles graceful server shutdown
func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
