// Package mcpserver exposes the assistant catalog over the Model Context
// Protocol, on stdio for local clients and streamable HTTP for the web app.
package mcpserver

import (
	"context"
	"net/http"
	"strings"

	"baby-tracker-go/internal/assistant"
	"baby-tracker-go/internal/domain/errs"
	"github.com/mark3labs/mcp-go/server"
)

const Name = "baby-tracker"

// Version is set at build time via ldflags.
var Version = "dev"

// ErrNoStdioUser is returned when the stdio transport has no acting user configured.
var ErrNoStdioUser = errs.New(errs.KindUnauthorized, "MCP_USER_ID is required for the stdio transport")

// ActorFunc extracts the authenticated user from an HTTP request.
type ActorFunc func(r *http.Request) (string, bool)

// New registers every tool, resource and prompt of the catalog.
func New(catalog *assistant.Catalog) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, tool := range catalog.Tools() {
		s.AddTool(tool, catalog.Handle)
	}
	for _, resource := range catalog.Resources() {
		s.AddResource(resource, catalog.ReadResource)
	}
	for _, template := range catalog.ResourceTemplates() {
		s.AddResourceTemplate(template, catalog.ReadResource)
	}
	for _, prompt := range catalog.Prompts() {
		s.AddPrompt(prompt, catalog.GetPrompt)
	}
	return s
}

// ServeStdio runs the server on stdin/stdout acting as userID.
func ServeStdio(s *server.MCPServer, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrNoStdioUser
	}
	return server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return assistant.WithActor(ctx, userID)
	}))
}

// HTTPHandler serves the streamable HTTP transport. Requests without an
// authenticated user still reach the server; tool calls then fail as unauthorized.
func HTTPHandler(s *server.MCPServer, actor ActorFunc) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if userID, ok := actor(r); ok {
				return assistant.WithActor(ctx, userID)
			}
			return ctx
		}),
	)
}

const instructions = `Baby tracker for a household's children.
Call list-children first to find a childId. Times are ISO 8601; omitted start or end times mean now.
Query tools default to the last day; pass from/to or days for longer periods.
A logical day starts at the configured day start hour, not at midnight.`
