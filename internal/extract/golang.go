package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

func extractGo(rec *FileRecord, root *sitter.Node, source []byte) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "method_declaration":
			name := fieldText(n, "name", source)
			if name == "" {
				break
			}
			rec.Functions = append(rec.Functions, FunctionDecl{Name: name, Line: lineOf(n)})
			if isExportedName(name) {
				rec.Exports = append(rec.Exports, ExportDecl{Statement: firstLine(n, source), Line: lineOf(n)})
			}

		case "type_spec":
			name := fieldText(n, "name", source)
			if name == "" {
				break
			}
			rec.Classes = append(rec.Classes, ClassDecl{Name: name, Line: lineOf(n)})
			if isExportedName(name) {
				rec.Exports = append(rec.Exports, ExportDecl{Statement: firstLine(n, source), Line: lineOf(n)})
			}

		case "import_spec":
			rec.Imports = append(rec.Imports, ImportDecl{
				Statement: firstLine(n, source),
				Line:      lineOf(n),
			})

		case "comment":
			text := n.Content(source)
			if strings.HasPrefix(text, "/*") {
				rec.Docs = append(rec.Docs, DocBlock{
					Text: strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")),
					Line: lineOf(n),
				})
			}
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
}

func isExportedName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
