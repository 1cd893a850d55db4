// Package main is the entry point for the scout CLI tool.
package main

import (
	"github.com/hargabyte/scout/internal/cmd"
)

func main() {
	cmd.Execute()
}
