package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hargabyte/scout/internal/graph"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Build the code graph from a source tree",
	Long: `Walk the given path (default: current directory), extract entities
from every supported source file, and build the in-memory graph.

With caching enabled the graph is stored as a snapshot in
.scout/cache.db so later queries skip the scan.

Examples:
  scout scan                # Scan the current directory
  scout scan ./backend      # Scan a subtree
  scout scan -v             # Show per-stage progress`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cmd.Context(), root, cfg, true)
	if err != nil {
		return err
	}

	g := eng.Graph()
	fmt.Printf("scanned %s\n", root)
	fmt.Printf("  nodes: %d\n", g.NodeCount())
	fmt.Printf("  edges: %d\n", g.EdgeCount())
	for _, kind := range []graph.NodeType{
		graph.NodeFile, graph.NodeFunction, graph.NodeClass,
		graph.NodeImport, graph.NodeExport, graph.NodeDocumentation,
	} {
		if n := len(g.FindNodesByType(kind)); n > 0 {
			fmt.Printf("  %s: %d\n", kind, n)
		}
	}
	return nil
}
