package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func extractPython(rec *FileRecord, root *sitter.Node, source []byte) {
	// Module docstring: a string expression as the first statement.
	if root.NamedChildCount() > 0 {
		first := root.NamedChild(0)
		if first.Type() == "expression_statement" && first.NamedChildCount() > 0 {
			if expr := first.NamedChild(0); expr.Type() == "string" {
				rec.Docs = append(rec.Docs, DocBlock{
					Text: cleanDocstring(expr.Content(source)),
					Line: lineOf(expr),
				})
			}
		}
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			if name := fieldText(n, "name", source); name != "" {
				rec.Functions = append(rec.Functions, FunctionDecl{Name: name, Line: lineOf(n)})
			}

		case "class_definition":
			if name := fieldText(n, "name", source); name != "" {
				rec.Classes = append(rec.Classes, ClassDecl{
					Name:    name,
					Line:    lineOf(n),
					Extends: firstSuperclass(n, source),
				})
			}

		case "import_statement", "import_from_statement":
			rec.Imports = append(rec.Imports, ImportDecl{
				Statement: firstLine(n, source),
				Line:      lineOf(n),
			})
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
}

// firstSuperclass returns the first base class from a class definition's
// superclasses argument list, or "".
func firstSuperclass(class *sitter.Node, source []byte) string {
	supers := class.ChildByFieldName("superclasses")
	if supers == nil || supers.NamedChildCount() == 0 {
		return ""
	}
	return supers.NamedChild(0).Content(source)
}

func cleanDocstring(text string) string {
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			return strings.TrimSpace(text[len(quote) : len(text)-len(quote)])
		}
	}
	return strings.TrimSpace(text)
}
