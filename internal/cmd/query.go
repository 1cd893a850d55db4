package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hargabyte/scout/internal/engine"
	"github.com/hargabyte/scout/internal/output"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Search the graph with a natural-language query",
	Long: `Classify the query's intent, extract keywords, and rank matching
graph entities by relevance.

Examples:
  scout query "find the login function"
  scout query "which file contains the server setup"
  scout query "show me the documentation" --limit 5
  scout query "find parseConfig" --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

var queryLimit int

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().IntVar(&queryLimit, "limit", 20, "Maximum results to show")
}

// matchView is the presentation shape of one ranked match.
type matchView struct {
	Score int    `yaml:"score" json:"score"`
	Type  string `yaml:"type" json:"type"`
	Name  string `yaml:"name" json:"name"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
	Line  string `yaml:"line,omitempty" json:"line,omitempty"`
}

// queryView is the presentation shape of a whole query result.
type queryView struct {
	QueryType string      `yaml:"query_type" json:"query_type"`
	Keywords  []string    `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Matches   []matchView `yaml:"matches" json:"matches"`
}

func runQuery(cmd *cobra.Command, args []string) error {
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

	res := eng.Query(text)
	if len(res.Ranked) > queryLimit {
		res.Ranked = res.Ranked[:queryLimit]
	}

	view := toQueryView(res)

	format, err := output.ParseFormat(effectiveFormat(cfg))
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case output.FormatYAML:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(view)
	default:
		printQueryView(view)
		return nil
	}
}

func toQueryView(res engine.QueryResult) queryView {
	view := queryView{QueryType: string(res.QueryType)}
	for _, kw := range res.Keywords {
		view.Keywords = append(view.Keywords, kw.Original)
	}
	for _, r := range res.Ranked {
		m := matchView{
			Score: r.Score,
			Type:  string(r.Node.Type),
			Name:  r.Node.Name(),
		}
		if fp, ok := r.Node.Data.Property("filePath"); ok {
			m.File = fp
		}
		if line, ok := r.Node.Data.Property("line"); ok {
			m.Line = line
		}
		view.Matches = append(view.Matches, m)
	}
	return view
}

func printQueryView(view queryView) {
	fmt.Printf("query type: %s\n", view.QueryType)
	if len(view.Keywords) > 0 {
		fmt.Printf("keywords:   %s\n", strings.Join(view.Keywords, ", "))
	}
	if len(view.Matches) == 0 {
		fmt.Println("no matches")
		return
	}
	fmt.Println()
	for _, m := range view.Matches {
		loc := ""
		if m.File != "" {
			loc = "  " + m.File
			if m.Line != "" {
				loc += ":" + m.Line
			}
		}
		fmt.Printf("%3d  %-13s %s%s\n", m.Score, m.Type, m.Name, loc)
	}
}
