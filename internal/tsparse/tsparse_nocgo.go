//go:build !cgo

package tsparse

import "jscheck/internal/parser"

// Parse is unavailable without cgo: the tree-sitter grammar is a C
// library. Callers get an empty program and a message explaining why.
func Parse(source string) (*parser.Program, []string) {
	return &parser.Program{Position: parser.Position{Line: 1, Column: 1}},
		[]string{"tree-sitter engine unavailable: built without cgo"}
}
