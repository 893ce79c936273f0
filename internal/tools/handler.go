// Package tools provides the handler interface and MCP adapter shared by
// all Purview tool implementations.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
)

// ResourceHandler defines the interface for handling Purview API-backed
// tool operations.
type ResourceHandler interface {
	Handle(ctx context.Context, params map[string]interface{}, cfg *config.ConfigData) (string, error)
}

// ResourceHandlerFunc is a function type that implements ResourceHandler.
// This allows regular functions to be used as ResourceHandlers without
// having to create a struct.
type ResourceHandlerFunc func(ctx context.Context, params map[string]interface{}, cfg *config.ConfigData) (string, error)

var _ ResourceHandler = ResourceHandlerFunc(nil)

// Handle implements the ResourceHandler interface for ResourceHandlerFunc.
func (f ResourceHandlerFunc) Handle(ctx context.Context, params map[string]interface{}, cfg *config.ConfigData) (string, error) {
	return f(ctx, params, cfg)
}

// logToolCall logs the start of a tool call.
func logToolCall(toolName string, arguments interface{}) {
	// Try to format as JSON for better readability
	if jsonBytes, err := json.Marshal(arguments); err == nil {
		logger.Debugf("\n>>> [%s] %s", toolName, string(jsonBytes))
	} else {
		logger.Debugf("\n>>> [%s] %v", toolName, arguments)
	}
}

// logToolResult logs the result or error of a tool call.
func logToolResult(toolName string, result string, err error) {
	if err != nil {
		logger.Debugf("\n<<< [%s] ERROR: %v", toolName, err)
	} else if len(result) > 500 {
		logger.Debugf("\n<<< [%s] Result: %d bytes (truncated): %.500s...", toolName, len(result), result)
	} else {
		logger.Debugf("\n<<< [%s] Result: %s", toolName, result)
	}
}

// CreateResourceHandler creates an adapter that converts a ResourceHandler
// to the format expected by the MCP server. The adapter applies the
// configured API timeout, logs the call, and tracks telemetry.
func CreateResourceHandler(handler ResourceHandler, cfg *config.ConfigData) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := req.Params.Arguments.(map[string]interface{})
		if !ok {
			if req.Params.Arguments == nil {
				args = map[string]interface{}{}
			} else {
				err := fmt.Errorf("arguments must be a map[string]interface{}, got %T", req.Params.Arguments)
				if cfg.TelemetryService != nil {
					cfg.TelemetryService.TrackToolInvocation(ctx, req.Params.Name, "", false)
				}
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		logToolCall(req.Params.Name, args)

		callCtx, cancel := context.WithTimeout(ctx, cfg.APITimeout())
		defer cancel()

		result, err := handler.Handle(callCtx, args, cfg)

		// Track tool invocation with minimal data
		if cfg.TelemetryService != nil {
			cfg.TelemetryService.TrackToolInvocation(ctx, req.Params.Name, getOperationValue(args), err == nil)
		}

		logToolResult(req.Params.Name, result, err)

		if err != nil {
			// Include handler output in the error message for better diagnostics
			if result != "" {
				return mcp.NewToolResultError(fmt.Sprintf("%s\n%s", err.Error(), result)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(result), nil
	}
}

func getOperationValue(args map[string]interface{}) string {
	if op, _ := args["operation"].(string); op != "" {
		return op
	}
	if action, _ := args["action"].(string); action != "" {
		return action
	}
	return ""
}
