// Package output renders context results for terminals, files, and
// prompts.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatMarkdown is the default prompt-ready markdown output.
	FormatMarkdown Format = "markdown"

	// FormatText is a compact plain-text output for terminals.
	FormatText Format = "text"

	// FormatJSON is the JSON output format.
	FormatJSON Format = "json"

	// FormatYAML is the YAML output format.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string into a Format value.
// Accepts: "markdown", "md", "text", "json", "yaml" (case-insensitive).
// Returns an error for invalid format values.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected markdown, text, json, or yaml)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}
