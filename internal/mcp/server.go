// Package mcp provides an MCP (Model Context Protocol) server for scout.
// This allows AI agents to query the code graph through MCP tools instead
// of CLI commands.
package mcp

import (
	gocontext "context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	scoutcontext "github.com/hargabyte/scout/internal/context"
	"github.com/hargabyte/scout/internal/engine"
	"github.com/hargabyte/scout/internal/output"
)

// Server wraps the MCP server around a populated engine.
type Server struct {
	mcpServer    *server.MCPServer
	engine       *engine.Engine
	root         string
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
}

// AllTools lists all available tools
var AllTools = []string{"scout_query", "scout_context", "scout_overview"}

// New creates a new MCP server over an already populated engine. root is
// reported in tool output so agents know which tree they are querying.
func New(eng *engine.Engine, root string, cfg Config) (*Server, error) {
	mcpServer := server.NewMCPServer(
		"scout",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		engine:       eng,
		root:         root,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "scout_query":
		return s.registerQueryTool()
	case "scout_context":
		return s.registerContextTool()
	case "scout_overview":
		return s.registerOverviewTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "scout serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// Tool registration

func (s *Server) registerQueryTool() error {
	tool := mcp.NewTool("scout_query",
		mcp.WithDescription("Search the code graph with a natural-language query. Returns the classified intent, keywords, and ranked matching entities."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language query, e.g. 'find the login function'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 20)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleQuery)
	return nil
}

func (s *Server) registerContextTool() error {
	tool := mcp.NewTool("scout_context",
		mcp.WithDescription("Assemble a bounded, prompt-ready context bundle for a query: overview summary, code excerpts, and relationships in markdown."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language description of what context to gather"),
		),
		mcp.WithNumber("max_files",
			mcp.Description("Maximum files to include (default: 5)"),
		),
		mcp.WithNumber("max_code_length",
			mcp.Description("Per-file character budget for code excerpts (default: 8000)"),
		),
		mcp.WithBoolean("full_content",
			mcp.Description("Emit full file content instead of keyword-focused excerpts"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleContext)
	return nil
}

func (s *Server) registerOverviewTool() error {
	tool := mcp.NewTool("scout_overview",
		mcp.WithDescription("Project overview: node counts by type plus file, function, and class listings. Useful for codebase orientation."),
		mcp.WithNumber("max_files",
			mcp.Description("Maximum files to list (default: 5)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleOverview)
	return nil
}

// Tool handlers

func (s *Server) handleQuery(ctx gocontext.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	text, ok := args["query"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	limit := 20
	if l, ok := args["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	return mcp.NewToolResultText(s.executeQuery(text, limit)), nil
}

func (s *Server) handleContext(ctx gocontext.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	text, ok := args["query"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	opts := scoutcontext.DefaultOptions()
	if mf, ok := args["max_files"].(float64); ok && mf > 0 {
		opts.MaxFiles = int(mf)
	}
	if mc, ok := args["max_code_length"].(float64); ok && mc > 0 {
		opts.MaxCodeLength = int(mc)
	}
	if full, ok := args["full_content"].(bool); ok {
		opts.IncludeFullContent = full
	}

	rendered, err := s.executeContext(text, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(rendered), nil
}

func (s *Server) handleOverview(ctx gocontext.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	opts := scoutcontext.DefaultOptions()
	if mf, ok := args["max_files"].(float64); ok && mf > 0 {
		opts.MaxFiles = int(mf)
	}

	rendered, err := s.executeOverview(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(rendered), nil
}

// Tool execution, separated from MCP plumbing so it can be tested
// directly.

func (s *Server) executeQuery(text string, limit int) string {
	res := s.engine.Query(text)
	if len(res.Ranked) > limit {
		res.Ranked = res.Ranked[:limit]
	}
	return formatQueryResult(res)
}

func (s *Server) executeContext(text string, opts scoutcontext.Options) (string, error) {
	return s.engine.RenderContext(text, opts, output.FormatMarkdown)
}

// executeOverview builds the whole-graph summary. An empty query carries
// no keywords, which routes the builder into overview mode.
func (s *Server) executeOverview(opts scoutcontext.Options) (string, error) {
	res, err := s.engine.BuildContext("", opts)
	if err != nil {
		return "", err
	}
	res.Query = s.root
	return output.Render(res, output.FormatMarkdown)
}

// formatQueryResult renders ranked matches as a compact listing.
func formatQueryResult(res engine.QueryResult) string {
	out := fmt.Sprintf("query type: %s\n", res.QueryType)
	if len(res.Ranked) == 0 {
		return out + "no matches\n"
	}
	for _, r := range res.Ranked {
		name := r.Node.Name()
		if name == "" {
			name = "(unnamed)"
		}
		loc := ""
		if fp, ok := r.Node.Data.Property("filePath"); ok && fp != "" {
			loc = " " + fp
			if line, ok := r.Node.Data.Property("line"); ok {
				loc += ":" + line
			}
		}
		out += fmt.Sprintf("%3d  %s %s%s\n", r.Score, r.Node.Type, name, loc)
	}
	return out
}
