// Package telemetry provides OpenTelemetry tracing and Application Insights
// event tracking for the Purview MCP server. Telemetry is best-effort: a
// misconfigured or unreachable backend never fails a tool call.
package telemetry

import (
	"context"
	"os"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
)

// Config holds telemetry configuration.
type Config struct {
	ServiceName        string
	ServiceVersion     string
	OTLPEndpoint       string
	InstrumentationKey string
}

// NewConfig creates a telemetry configuration, reading the Application
// Insights instrumentation key from the environment if present.
func NewConfig(serviceName, serviceVersion string) *Config {
	return &Config{
		ServiceName:        serviceName,
		ServiceVersion:     serviceVersion,
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		InstrumentationKey: os.Getenv("APPINSIGHTS_INSTRUMENTATIONKEY"),
	}
}

// SetOTLPEndpoint overrides the OTLP endpoint.
func (c *Config) SetOTLPEndpoint(endpoint string) {
	c.OTLPEndpoint = endpoint
}

// Service tracks server and tool activity.
type Service struct {
	config         *Config
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	appInsights    appinsights.TelemetryClient
}

// NewService creates a new telemetry service. Call Initialize before use.
func NewService(config *Config) *Service {
	return &Service{config: config}
}

// Initialize sets up the OTLP trace exporter and the Application Insights
// client for whichever backends are configured.
func (s *Service) Initialize(ctx context.Context) error {
	if s.config.OTLPEndpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(s.config.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return err
		}

		res := sdkresource.NewSchemaless(
			attribute.String("service.name", s.config.ServiceName),
			attribute.String("service.version", s.config.ServiceVersion),
		)

		s.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(s.tracerProvider)
		s.tracer = s.tracerProvider.Tracer(s.config.ServiceName)
	}

	if s.config.InstrumentationKey != "" {
		s.appInsights = appinsights.NewTelemetryClient(s.config.InstrumentationKey)
	}

	return nil
}

// Enabled reports whether any telemetry backend is active.
func (s *Service) Enabled() bool {
	return s != nil && (s.tracer != nil || s.appInsights != nil)
}

// TrackServiceStartup records a server startup event.
func (s *Service) TrackServiceStartup(ctx context.Context) {
	if s == nil {
		return
	}
	if s.tracer != nil {
		_, span := s.tracer.Start(ctx, "service.startup")
		span.SetAttributes(attribute.String("service.version", s.config.ServiceVersion))
		span.End()
	}
	if s.appInsights != nil {
		event := appinsights.NewEventTelemetry("ServiceStartup")
		event.Properties["service.version"] = s.config.ServiceVersion
		s.appInsights.Track(event)
	}
}

// TrackToolInvocation records a tool invocation with its outcome.
func (s *Service) TrackToolInvocation(ctx context.Context, toolName, operation string, success bool) {
	if s == nil {
		return
	}
	if s.tracer != nil {
		_, span := s.tracer.Start(ctx, "tool.invocation")
		span.SetAttributes(
			attribute.String("tool.name", toolName),
			attribute.String("tool.operation", operation),
			attribute.Bool("tool.success", success),
		)
		span.End()
	}
	if s.appInsights != nil {
		event := appinsights.NewEventTelemetry("ToolInvocation")
		event.Properties["tool.name"] = toolName
		if operation != "" {
			event.Properties["tool.operation"] = operation
		}
		if success {
			event.Properties["tool.success"] = "true"
		} else {
			event.Properties["tool.success"] = "false"
		}
		s.appInsights.Track(event)
	}
}

// Shutdown flushes and stops the telemetry backends.
func (s *Service) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if s.appInsights != nil {
		select {
		case <-s.appInsights.Channel().Close():
		case <-ctx.Done():
			logger.Warnf("telemetry: Application Insights flush interrupted: %v", ctx.Err())
		}
	}
	if s.tracerProvider != nil {
		return s.tracerProvider.Shutdown(ctx)
	}
	return nil
}
