// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Docmend's scan and fix operations for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docmend/docmend/internal/fix"
	"github.com/docmend/docmend/internal/history"
	"github.com/docmend/docmend/internal/scan"
	"github.com/docmend/docmend/internal/storage"
)

// Server wraps the MCP server with Docmend tools.
type Server struct {
	mcp    *server.MCPServer
	tree   *storage.Tree
	db     history.RunStore
	logger *slog.Logger
}

// New creates a new MCP server with all Docmend tools registered.
func New(tree *storage.Tree, db history.RunStore, logger *slog.Logger) *Server {
	s := &Server{tree: tree, db: db, logger: logger}

	s.mcp = server.NewMCPServer(
		"Docmend",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("scan_links",
		mcp.WithDescription("Scan the documentation tree for broken links and return the classified report."),
	), s.scanLinks)

	s.mcp.AddTool(mcp.NewTool("fix_links",
		mcp.WithDescription("Run a full remediation pass: create stubs for missing files, "+
			"rewrite dead research links, and scaffold sample documents. Returns the fix summary."),
		mcp.WithBoolean("dry_run", mcp.Description("Report intended actions without writing any files")),
	), s.fixLinks)

	s.mcp.AddTool(mcp.NewTool("last_run",
		mcp.WithDescription("Return the summary of the most recent remediation run."),
	), s.lastRun)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) scanLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := scan.NewScanner(s.tree, s.logger).Scan()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"total":       report.Total(),
		"by_category": report.ByCategory,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) fixLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dryRun := req.GetBool("dry_run", false)

	summary, err := fix.New(s.tree, dryRun, s.logger).Run()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.db.RecordRun(history.NewRun(s.tree.Root(), summary)); err != nil {
		s.logger.Error("mcp: record run failed", slog.String("error", err.Error()))
	}
	out, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) lastRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, err := s.db.LastRun()
	if err != nil {
		return mcp.NewToolResultError("no runs recorded"), nil
	}
	out, _ := json.MarshalIndent(run, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
