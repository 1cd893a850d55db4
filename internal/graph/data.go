package graph

import "strconv"

// NodeData is the kind-specific attribute bag carried by a node. Each node
// kind has its own concrete type carrying only the fields that kind needs;
// validation happens at the extraction boundary, not here. Malformed data
// is tolerated and simply reduces scoring quality.
type NodeData interface {
	// EntityName returns the primary name of the entity, or "" when the
	// kind has no meaningful name.
	EntityName() string

	// Property returns the named attribute as a string for exact-match
	// lookups. The second return is false when the kind has no such key.
	Property(key string) (string, bool)
}

// RepositoryData describes a repository grouping node.
type RepositoryData struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func (d *RepositoryData) EntityName() string { return d.Name }

func (d *RepositoryData) Property(key string) (string, bool) {
	switch key {
	case "name":
		return d.Name, true
	case "url":
		return d.URL, true
	}
	return "", false
}

// PathData describes a path grouping node (a directory or module prefix
// used as an opaque grouping key).
type PathData struct {
	Path string `json:"path"`
}

func (d *PathData) EntityName() string { return d.Path }

func (d *PathData) Property(key string) (string, bool) {
	if key == "path" {
		return d.Path, true
	}
	return "", false
}

// FileData describes a source file, including its raw content. Functions
// holds the names of functions defined in the file as a back-reference
// convenience for overview rendering.
type FileData struct {
	Path      string   `json:"path"`
	Content   string   `json:"content"`
	Size      int      `json:"size"`
	Language  string   `json:"language"`
	Functions []string `json:"functions,omitempty"`
}

func (d *FileData) EntityName() string { return d.Path }

func (d *FileData) Property(key string) (string, bool) {
	switch key {
	case "path":
		return d.Path, true
	case "language":
		return d.Language, true
	case "size":
		return strconv.Itoa(d.Size), true
	}
	return "", false
}

// FunctionData describes a function or method. FilePath is a back-reference
// to the owning file; the file node owns the function node, not the other
// way around.
type FunctionData struct {
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
}

func (d *FunctionData) EntityName() string { return d.Name }

func (d *FunctionData) Property(key string) (string, bool) {
	switch key {
	case "name":
		return d.Name, true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	}
	return "", false
}

// ClassData describes a class or type definition. Extends carries the
// declared supertype name, if any.
type ClassData struct {
	Name     string `json:"name"`
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Extends  string `json:"extends,omitempty"`
}

func (d *ClassData) EntityName() string { return d.Name }

func (d *ClassData) Property(key string) (string, bool) {
	switch key {
	case "name":
		return d.Name, true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	case "extends":
		return d.Extends, true
	}
	return "", false
}

// ImportData describes one import statement in a file.
type ImportData struct {
	Statement string `json:"statement"`
	FilePath  string `json:"filePath"`
	Line      int    `json:"line"`
}

func (d *ImportData) EntityName() string { return d.Statement }

func (d *ImportData) Property(key string) (string, bool) {
	switch key {
	case "statement":
		return d.Statement, true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	}
	return "", false
}

// ExportData describes one export statement in a file.
type ExportData struct {
	Statement string `json:"statement"`
	FilePath  string `json:"filePath"`
	Line      int    `json:"line"`
}

func (d *ExportData) EntityName() string { return d.Statement }

func (d *ExportData) Property(key string) (string, bool) {
	switch key {
	case "statement":
		return d.Statement, true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	}
	return "", false
}

// DocumentationData describes a documentation block (doc comment or
// docstring) attached to a file.
type DocumentationData struct {
	Text     string `json:"text"`
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
}

func (d *DocumentationData) EntityName() string { return "" }

func (d *DocumentationData) Property(key string) (string, bool) {
	switch key {
	case "text":
		return d.Text, true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	}
	return "", false
}

// HeadingData describes a markdown heading.
type HeadingData struct {
	Text     string `json:"text"`
	Level    int    `json:"level"`
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
}

func (d *HeadingData) EntityName() string { return d.Text }

func (d *HeadingData) Property(key string) (string, bool) {
	switch key {
	case "text":
		return d.Text, true
	case "level":
		return strconv.Itoa(d.Level), true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	}
	return "", false
}

// CodeBlockData describes a fenced code block inside a markdown file.
type CodeBlockData struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
}

func (d *CodeBlockData) EntityName() string { return "" }

func (d *CodeBlockData) Property(key string) (string, bool) {
	switch key {
	case "language":
		return d.Language, true
	case "content":
		return d.Content, true
	case "filePath":
		return d.FilePath, true
	case "line":
		return strconv.Itoa(d.Line), true
	}
	return "", false
}

// dataForType returns a zero value of the concrete data type for a node
// kind. Used by snapshot import to decode type-tagged node data.
func dataForType(kind NodeType) NodeData {
	switch kind {
	case NodeRepository:
		return &RepositoryData{}
	case NodePath:
		return &PathData{}
	case NodeFile:
		return &FileData{}
	case NodeFunction:
		return &FunctionData{}
	case NodeClass:
		return &ClassData{}
	case NodeImport:
		return &ImportData{}
	case NodeExport:
		return &ExportData{}
	case NodeDocumentation:
		return &DocumentationData{}
	case NodeHeading:
		return &HeadingData{}
	case NodeCodeBlock:
		return &CodeBlockData{}
	}
	return nil
}
