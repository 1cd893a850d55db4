package context

import "strings"

// BoundaryResolver finds where a code unit (function or class body) that
// starts on a given line ends. One implementation exists per language
// family: brace-delimited and indentation-delimited. Keeping boundary
// detection behind this interface keeps the range merge and budget logic
// language-agnostic.
type BoundaryResolver interface {
	// BlockEnd returns the zero-based index of the last line of the block
	// starting at start. When no block structure is detectable it returns
	// start, so the caller degrades to the plain keyword window.
	BlockEnd(lines []string, start int) int
}

// ResolverFor selects the resolver for a language tag. Unknown languages
// get the brace resolver, the more common family.
func ResolverFor(language string) BoundaryResolver {
	switch language {
	case "python", "yaml", "haskell", "coffeescript":
		return indentResolver{}
	default:
		return braceResolver{}
	}
}

// braceResolver tracks brace depth for brace-delimited languages. Strings
// and comments are not lexed; for boundary detection on real-world code
// the brace count is a serviceable approximation, and a miscount only
// widens or narrows the excerpt, never corrupts it.
type braceResolver struct{}

func (braceResolver) BlockEnd(lines []string, start int) int {
	if start < 0 || start >= len(lines) {
		return start
	}
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		for _, c := range lines[i] {
			switch c {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i
		}
		// A declaration whose opening brace never appears within a few
		// lines is treated as a one-liner.
		if !opened && i-start >= 2 {
			return start
		}
	}
	if opened {
		return len(lines) - 1
	}
	return start
}

// indentResolver detects the dedent that closes an indentation-delimited
// block: the body runs until the first non-blank line indented at or below
// the declaration line.
type indentResolver struct{}

func (indentResolver) BlockEnd(lines []string, start int) int {
	if start < 0 || start >= len(lines) {
		return start
	}
	base := indentWidth(lines[start])
	end := start
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentWidth(lines[i]) <= base {
			break
		}
		end = i
	}
	return end
}

// indentWidth measures leading whitespace, counting a tab as 4 columns.
func indentWidth(line string) int {
	width := 0
	for _, c := range line {
		switch c {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
