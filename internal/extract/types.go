// Package extract turns raw source files into entity records: functions,
// classes, imports, exports, and documentation per file. Code languages
// are parsed with tree-sitter; markdown is scanned line by line. The
// records feed the engine's graph population and carry no graph state of
// their own.
package extract

// FunctionDecl is one function or method declaration. Line is 1-based.
type FunctionDecl struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// ClassDecl is one class or type declaration. Extends names the declared
// supertype, when present.
type ClassDecl struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Extends string `json:"extends,omitempty"`
}

// ImportDecl is one import statement, kept verbatim.
type ImportDecl struct {
	Statement string `json:"statement"`
	Line      int    `json:"line"`
}

// ExportDecl is one export statement or exported symbol.
type ExportDecl struct {
	Statement string `json:"statement"`
	Line      int    `json:"line"`
}

// DocBlock is one documentation comment or docstring.
type DocBlock struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

// Heading is one markdown heading.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
	Line  int    `json:"line"`
}

// CodeBlock is one fenced code block in a markdown file.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
	Line     int    `json:"line"`
}

// FileRecord is the extraction result for one file. Missing lists mean
// the language extractor found nothing (or does not exist); consumers
// treat them as empty rather than failing.
type FileRecord struct {
	Path       string         `json:"path"`
	Language   string         `json:"language"`
	Content    string         `json:"content"`
	Functions  []FunctionDecl `json:"functions,omitempty"`
	Classes    []ClassDecl    `json:"classes,omitempty"`
	Imports    []ImportDecl   `json:"imports,omitempty"`
	Exports    []ExportDecl   `json:"exports,omitempty"`
	Docs       []DocBlock     `json:"docs,omitempty"`
	Headings   []Heading      `json:"headings,omitempty"`
	CodeBlocks []CodeBlock    `json:"code_blocks,omitempty"`
}
