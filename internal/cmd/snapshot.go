package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hargabyte/scout/internal/cache"
	"github.com/hargabyte/scout/internal/config"
	"github.com/hargabyte/scout/internal/engine"
)

// snapshotCmd groups the snapshot subcommands
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export, import, and manage graph snapshots",
	Long: `The graph serializes to a JSON snapshot. Snapshots can be written
to a file for transfer, imported back, and are also what the cache in
.scout/cache.db stores between runs.

Examples:
  scout snapshot export -o graph.json   # Write the current graph
  scout snapshot import graph.json      # Replace the cached graph
  scout snapshot list                   # Show cached snapshots
  scout snapshot clear                  # Drop all cached snapshots`,
}

var snapshotOut string

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)

	snapshotExportCmd.Flags().StringVarP(&snapshotOut, "output", "o", "", "Write to file instead of stdout")
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the graph as a JSON snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		blob, err := eng.Export()
		if err != nil {
			return fmt.Errorf("exporting graph: %w", err)
		}

		if snapshotOut == "" {
			_, err = os.Stdout.Write(blob)
			return err
		}
		if err := os.WriteFile(snapshotOut, blob, 0644); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", snapshotOut, len(blob))
		return nil
	},
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON snapshot into the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading snapshot: %w", err)
		}

		// Validate before caching: a broken snapshot must not poison
		// the store.
		eng := engine.New()
		if err := eng.Import(blob); err != nil {
			return fmt.Errorf("invalid snapshot: %w", err)
		}

		root, err := resolveRoot(nil)
		if err != nil {
			return err
		}
		scoutDir, err := config.EnsureConfigDir(root)
		if err != nil {
			return err
		}
		store, err := cache.Open(scoutDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(root, blob, eng.Graph().NodeCount(), eng.Graph().EdgeCount()); err != nil {
			return err
		}
		fmt.Printf("imported %d nodes, %d edges\n", eng.Graph().NodeCount(), eng.Graph().EdgeCount())
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no snapshots")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  nodes=%d edges=%d saved=%s\n",
				e.Root, e.NodeCount, e.EdgeCount, e.SavedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

// openStore opens the snapshot store for the working directory's tree.
func openStore() (*cache.Store, error) {
	root, err := resolveRoot(nil)
	if err != nil {
		return nil, err
	}
	scoutDir, err := config.EnsureConfigDir(root)
	if err != nil {
		return nil, err
	}
	return cache.Open(scoutDir)
}
