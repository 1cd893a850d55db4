package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hargabyte/scout/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio. This lets
AI agents query the code graph through MCP tools instead of spawning
CLI commands for every question.

The graph is built once at startup (from the cache when fresh) and
stays loaded for the life of the server.

Available Tools:
  scout_query      Ranked entity search
  scout_context    Bounded context bundle assembly
  scout_overview   Project overview

Examples:
  scout serve                                  # All tools, 30m timeout
  scout serve --tools scout_query              # Restrict the tool set
  scout serve --timeout 0                      # Never time out`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

var (
	serveTools   string
	serveTimeout string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
}

func runServe(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cmd.Context(), root, cfg, false)
	if err != nil {
		return err
	}

	var timeout time.Duration
	if serveTimeout != "" && serveTimeout != "0" {
		timeout, err = time.ParseDuration(serveTimeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", serveTimeout, err)
		}
	}

	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			tools = append(tools, strings.TrimSpace(t))
		}
	}

	server, err := mcp.New(eng, root, mcp.Config{Tools: tools, Timeout: timeout})
	if err != nil {
		return err
	}

	logger.Info("mcp server listening on stdio",
		"root", root, "tools", strings.Join(server.ListTools(), ","))
	return server.ServeStdio()
}
