package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractJavaScript walks a JavaScript or TypeScript parse tree. The two
// grammars share the node types this walker cares about.
func extractJavaScript(rec *FileRecord, root *sitter.Node, source []byte) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "generator_function_declaration", "method_definition":
			if name := fieldText(n, "name", source); name != "" {
				rec.Functions = append(rec.Functions, FunctionDecl{Name: name, Line: lineOf(n)})
			}

		case "variable_declarator":
			// const handler = () => {} and friends.
			if value := n.ChildByFieldName("value"); value != nil {
				switch value.Type() {
				case "arrow_function", "function_expression", "function":
					if name := fieldText(n, "name", source); name != "" {
						rec.Functions = append(rec.Functions, FunctionDecl{Name: name, Line: lineOf(n)})
					}
				}
			}

		case "class_declaration", "class":
			if name := fieldText(n, "name", source); name != "" {
				rec.Classes = append(rec.Classes, ClassDecl{
					Name:    name,
					Line:    lineOf(n),
					Extends: heritageName(n, source),
				})
			}

		case "import_statement":
			rec.Imports = append(rec.Imports, ImportDecl{
				Statement: firstLine(n, source),
				Line:      lineOf(n),
			})

		case "export_statement":
			rec.Exports = append(rec.Exports, ExportDecl{
				Statement: firstLine(n, source),
				Line:      lineOf(n),
			})

		case "expression_statement":
			// module.exports = {...} counts as an export.
			text := firstLine(n, source)
			if strings.HasPrefix(text, "module.exports") || strings.HasPrefix(text, "exports.") {
				rec.Exports = append(rec.Exports, ExportDecl{Statement: text, Line: lineOf(n)})
			}

		case "comment":
			text := n.Content(source)
			if strings.HasPrefix(text, "/**") {
				rec.Docs = append(rec.Docs, DocBlock{Text: cleanJSDoc(text), Line: lineOf(n)})
			}
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
}

// heritageName returns the superclass name from a class_heritage clause,
// or "" when the class extends nothing.
func heritageName(class *sitter.Node, source []byte) string {
	for i := 0; i < int(class.NamedChildCount()); i++ {
		child := class.NamedChild(i)
		if child.Type() != "class_heritage" {
			continue
		}
		if child.NamedChildCount() > 0 {
			return child.NamedChild(0).Content(source)
		}
		// TypeScript wraps the expression in an extends_clause.
		text := strings.TrimSpace(strings.TrimPrefix(child.Content(source), "extends"))
		if i := strings.IndexAny(text, " \n{"); i >= 0 {
			text = text[:i]
		}
		return text
	}
	return ""
}

// cleanJSDoc strips the comment fencing from a /** */ block.
func cleanJSDoc(text string) string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
