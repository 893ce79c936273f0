package main

import (
	"context"
	"log"
	"time"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/server"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/version"
)

func main() {
	// Parse command line arguments
	cfg := config.NewConfig()
	cfg.ParseFlags()

	// Initialize telemetry
	ctx := context.Background()
	cfg.InitializeTelemetry(ctx, "purview-mcp", version.GetVersion())
	defer func() {
		if cfg.TelemetryService != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := cfg.TelemetryService.Shutdown(shutdownCtx); err != nil {
				log.Printf("Telemetry shutdown error: %v", err)
			}
		}
	}()

	// Create and initialize the service
	service := server.NewService(cfg)
	if err := service.Initialize(); err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	// Start the server with the specified transport
	if err := service.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
