package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	scoutcontext "github.com/hargabyte/scout/internal/context"
	"github.com/hargabyte/scout/internal/output"
)

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:   "context <text>",
	Short: "Assemble a bounded, prompt-ready context bundle",
	Long: `Run a query and assemble its answer into a context bundle: an
overview summary, keyword-focused code excerpts from the most relevant
files, and a relationship table.

The bundle is bounded by the configured budgets (max nodes, max files,
per-file character budget) so it fits in an LLM prompt. An empty or
overview-style query yields a representative sample of the tree.

Examples:
  scout context "how does login work"
  scout context "parse the config file" --max-files 3
  scout context "show the User model" --full --format markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContext,
}

var (
	contextMaxNodes int
	contextMaxFiles int
	contextMaxCode  int
	contextFull     bool
)

func init() {
	rootCmd.AddCommand(contextCmd)

	contextCmd.Flags().IntVar(&contextMaxNodes, "max-nodes", 0, "Maximum ranked nodes to expand (default from config)")
	contextCmd.Flags().IntVar(&contextMaxFiles, "max-files", 0, "Maximum files to include (default from config)")
	contextCmd.Flags().IntVar(&contextMaxCode, "max-code", 0, "Per-file character budget (default from config)")
	contextCmd.Flags().BoolVar(&contextFull, "full", false, "Emit full file content instead of excerpts")
}

func runContext(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	root, err := resolveRoot(nil)
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

	opts := scoutcontext.Options{
		MaxNodes:           cfg.Context.MaxNodes,
		MaxFiles:           cfg.Context.MaxFiles,
		MaxCodeLength:      cfg.Context.MaxCodeLength,
		IncludeFullContent: contextFull,
	}
	if contextMaxNodes > 0 {
		opts.MaxNodes = contextMaxNodes
	}
	if contextMaxFiles > 0 {
		opts.MaxFiles = contextMaxFiles
	}
	if contextMaxCode > 0 {
		opts.MaxCodeLength = contextMaxCode
	}

	format, err := output.ParseFormat(effectiveFormat(cfg))
	if err != nil {
		return err
	}
	rendered, err := eng.RenderContext(text, opts, format)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}
