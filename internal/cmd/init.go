package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hargabyte/scout/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .scout/config.yaml",
	Long: `Create the .scout directory in the current working directory and
write a default configuration file. Fails if a config file already
exists so local edits are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.SaveDefault(mustWorkDir())
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
