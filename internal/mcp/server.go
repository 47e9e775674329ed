package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/doctrove/doctrove/internal/registry"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes document search tools.
type Server struct {
	store *registry.Store
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over the given document store.
func NewServer(store *registry.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"doctrove",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
	s.mcp.AddTool(getDocumentTool, s.handleGetDocument)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(relatedDocumentsTool, s.handleRelatedDocuments)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
