// Package mcp serves the calculator tools over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/njchilds90/gocalc"
	"github.com/njchilds90/gocalc/internal/version"
)

// Defaults fill tool params the caller leaves out.
type Defaults struct {
	Angle     gocalc.AngleMode
	Precision *int // nil leaves the tool default
}

type Server struct {
	server   *mcp.Server
	logger   *slog.Logger
	defaults Defaults
}

func NewServer(name string, defaults Defaults, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		server:   mcp.NewServer(&mcp.Implementation{Name: name, Version: version.Info()}, nil),
		logger:   logger,
		defaults: defaults,
	}
	for _, spec := range gocalc.ToolSpecs() {
		s.server.AddTool(toolFor(spec), s.handler(spec.Name))
	}
	return s
}

// Run serves over stdin/stdout until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over t; used for in-process clients.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func toolFor(spec gocalc.ToolSpec) *mcp.Tool {
	props := make(map[string]*jsonschema.Schema, len(spec.Props))
	for name, typ := range spec.Props {
		p := &jsonschema.Schema{Type: typ}
		if typ == "array" {
			p.Items = &jsonschema.Schema{Type: "string"}
		}
		props[name] = p
	}
	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   spec.Required,
		},
	}
}

func (s *Server) handler(tool string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := map[string]interface{}{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
				return errorResult(tool, fmt.Errorf("invalid parameters: %w", err))
			}
		}
		if _, ok := params["angle"]; !ok && s.defaults.Angle != "" {
			params["angle"] = string(s.defaults.Angle)
		}
		if _, ok := params["precision"]; !ok && s.defaults.Precision != nil && tool == "evaluate" {
			params["precision"] = float64(*s.defaults.Precision)
		}

		resp := gocalc.HandleToolCallContext(ctx, gocalc.ToolRequest{Tool: tool, Params: params})
		s.logger.Debug("tool call", "tool", tool, "error", resp.Error)
		if resp.Error != "" {
			return errorResult(tool, fmt.Errorf("%s", resp.Error))
		}
		return jsonResult(resp)
	}
}

func jsonResult(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// errorResult reports tool failures inside the result with IsError set, so the
// client sees them instead of a protocol error.
func errorResult(tool string, err error) (*mcp.CallToolResult, error) {
	res, marshalErr := jsonResult(map[string]interface{}{
		"success": false,
		"error":   err.Error(),
		"tool":    tool,
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	res.IsError = true
	return res, nil
}
