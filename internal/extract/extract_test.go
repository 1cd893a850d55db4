package extract

import (
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/app.js", "javascript"},
		{"src/App.JSX", "javascript"},
		{"lib/index.ts", "typescript"},
		{"scripts/run.py", "python"},
		{"README.md", "markdown"},
		{"Makefile", ""},
		{"photo.png", ""},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFileUnknownLanguage(t *testing.T) {
	rec, err := File("data.csv", "a,b,c\n1,2,3\n")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if rec.Language != "" {
		t.Errorf("language = %q, want empty", rec.Language)
	}
	if rec.Content != "a,b,c\n1,2,3\n" {
		t.Error("content not preserved")
	}
	if len(rec.Functions) != 0 || len(rec.Classes) != 0 {
		t.Error("unknown language should extract nothing")
	}
}

const jsSample = `/**
 * Auth helpers.
 */
import { db } from './db';

function login(user, pass) {
  return db.check(user, pass);
}

const logout = (session) => {
  session.destroy();
};

class AdminSession extends Session {
  revoke() {}
}

module.exports = { login, logout };
`

func TestExtractJavaScript(t *testing.T) {
	rec, err := File("auth.js", jsSample)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	wantFuncs := map[string]int{"login": 6, "logout": 10, "revoke": 15}
	if len(rec.Functions) != len(wantFuncs) {
		t.Fatalf("functions = %v, want %d entries", rec.Functions, len(wantFuncs))
	}
	for _, fn := range rec.Functions {
		if wantFuncs[fn.Name] != fn.Line {
			t.Errorf("function %s at line %d, want %d", fn.Name, fn.Line, wantFuncs[fn.Name])
		}
	}

	if len(rec.Classes) != 1 || rec.Classes[0].Name != "AdminSession" {
		t.Fatalf("classes = %v, want AdminSession", rec.Classes)
	}
	if rec.Classes[0].Extends != "Session" {
		t.Errorf("extends = %q, want Session", rec.Classes[0].Extends)
	}

	if len(rec.Imports) != 1 || !strings.Contains(rec.Imports[0].Statement, "./db") {
		t.Errorf("imports = %v", rec.Imports)
	}
	if len(rec.Exports) != 1 || !strings.HasPrefix(rec.Exports[0].Statement, "module.exports") {
		t.Errorf("exports = %v", rec.Exports)
	}

	if len(rec.Docs) != 1 || rec.Docs[0].Text != "Auth helpers." {
		t.Errorf("docs = %v", rec.Docs)
	}
}

const pySample = `"""User model helpers."""
from dataclasses import dataclass
import os


class User(BaseModel):
    def save(self):
        pass


def load_user(uid):
    return User()
`

func TestExtractPython(t *testing.T) {
	rec, err := File("models.py", pySample)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	if len(rec.Docs) != 1 || rec.Docs[0].Text != "User model helpers." {
		t.Errorf("docs = %v", rec.Docs)
	}
	if len(rec.Imports) != 2 {
		t.Errorf("imports = %v, want 2", rec.Imports)
	}
	if len(rec.Classes) != 1 || rec.Classes[0].Name != "User" || rec.Classes[0].Extends != "BaseModel" {
		t.Errorf("classes = %v", rec.Classes)
	}

	names := make(map[string]bool)
	for _, fn := range rec.Functions {
		names[fn.Name] = true
	}
	if !names["save"] || !names["load_user"] {
		t.Errorf("functions = %v, want save and load_user", rec.Functions)
	}
}

const goSample = `package store

import (
	"errors"
	"fmt"
)

type Store struct {
	items map[string]string
}

func New() *Store {
	return &Store{items: make(map[string]string)}
}

func (s *Store) get(key string) (string, error) {
	v, ok := s.items[key]
	if !ok {
		return "", fmt.Errorf("missing %q: %w", key, errors.ErrUnsupported)
	}
	return v, nil
}
`

func TestExtractGo(t *testing.T) {
	rec, err := File("store.go", goSample)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	if len(rec.Imports) != 2 {
		t.Errorf("imports = %v, want 2", rec.Imports)
	}
	if len(rec.Classes) != 1 || rec.Classes[0].Name != "Store" {
		t.Errorf("classes = %v", rec.Classes)
	}

	var exported []string
	for _, ex := range rec.Exports {
		exported = append(exported, ex.Statement)
	}
	// Store and New are exported, the get method is not.
	if len(rec.Exports) != 2 {
		t.Errorf("exports = %v, want 2", exported)
	}
	if len(rec.Functions) != 2 {
		t.Errorf("functions = %v, want New and get", rec.Functions)
	}
}

const mdSample = `# Scout

Intro text.

## Usage

` + "```" + `bash
scout query "find login"
` + "```" + `

### Notes

` + "```" + `
plain block
`

func TestExtractMarkdown(t *testing.T) {
	rec, err := File("README.md", mdSample)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	if len(rec.Headings) != 3 {
		t.Fatalf("headings = %v, want 3", rec.Headings)
	}
	if rec.Headings[0].Text != "Scout" || rec.Headings[0].Level != 1 {
		t.Errorf("heading[0] = %+v", rec.Headings[0])
	}
	if rec.Headings[1].Text != "Usage" || rec.Headings[1].Level != 2 || rec.Headings[1].Line != 5 {
		t.Errorf("heading[1] = %+v", rec.Headings[1])
	}

	if len(rec.CodeBlocks) != 2 {
		t.Fatalf("code blocks = %v, want 2", rec.CodeBlocks)
	}
	if rec.CodeBlocks[0].Language != "bash" {
		t.Errorf("block language = %q, want bash", rec.CodeBlocks[0].Language)
	}
	if rec.CodeBlocks[0].Content != `scout query "find login"` {
		t.Errorf("block content = %q", rec.CodeBlocks[0].Content)
	}
	// Fence left open at EOF still captured.
	if rec.CodeBlocks[1].Content != "plain block\n" {
		t.Errorf("unterminated block = %q", rec.CodeBlocks[1].Content)
	}
}
