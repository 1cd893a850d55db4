package extract

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// extByLanguage maps file extensions to language tags.
var extByLanguage = map[string]string{
	".go":  "go",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".py":  "python",
	".md":  "markdown",
}

// DetectLanguage returns the language tag for a file path, or "" when the
// extension is not recognized.
func DetectLanguage(path string) string {
	return extByLanguage[strings.ToLower(filepath.Ext(path))]
}

// File extracts the entity record for one source file. Unknown languages
// and parse failures degrade to a bare record carrying only the raw
// content; extraction never fails a load. The returned error, when
// non-nil, is informational: the record alongside it is still usable.
func File(path, content string) (*FileRecord, error) {
	rec := &FileRecord{
		Path:     path,
		Language: DetectLanguage(path),
		Content:  content,
	}

	switch rec.Language {
	case "go":
		return rec, parseWith(rec, golang.GetLanguage(), extractGo)
	case "javascript":
		return rec, parseWith(rec, javascript.GetLanguage(), extractJavaScript)
	case "typescript":
		return rec, parseWith(rec, typescript.GetLanguage(), extractJavaScript)
	case "python":
		return rec, parseWith(rec, python.GetLanguage(), extractPython)
	case "markdown":
		extractMarkdown(rec)
		return rec, nil
	}
	return rec, nil
}

// walker consumes the parse tree root and fills the record.
type walker func(rec *FileRecord, root *sitter.Node, source []byte)

// parseWith runs a tree-sitter parse and hands the tree to the
// language-specific walker.
func parseWith(rec *FileRecord, lang *sitter.Language, walk walker) error {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	source := []byte(rec.Content)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return err
	}
	defer tree.Close()

	walk(rec, tree.RootNode(), source)
	return nil
}

// lineOf converts a node's start row to a 1-based line number.
func lineOf(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// firstLine returns the first line of a node's source text, for statement
// records that should stay single-line.
func firstLine(n *sitter.Node, source []byte) string {
	text := n.Content(source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// fieldText returns the text of a named field child, or "".
func fieldText(n *sitter.Node, field string, source []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(source)
}
