// # internal/parser/warnings.go
package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// WarningType classifies a non-fatal parse warning.
type WarningType string

const (
	WarningSyntaxError   WarningType = "syntax_error"
	WarningPartialParse  WarningType = "partial_parse"
	WarningEncodingError WarningType = "encoding_error"
)

// WarningLocation pinpoints one error or missing node. Line and Column are
// 1-based.
type WarningLocation struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet,omitempty"`
}

// Warning is a non-fatal problem attached to a file's analysis.
type Warning struct {
	FilePath  string            `json:"file_path"`
	Type      WarningType       `json:"type"`
	Message   string            `json:"message"`
	Locations []WarningLocation `json:"locations,omitempty"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.FilePath, w.Type, w.Message)
}

func syntaxWarning(path, message string, locations []WarningLocation) Warning {
	return Warning{FilePath: path, Type: WarningSyntaxError, Message: message, Locations: locations}
}

func encodingWarning(path, message string) Warning {
	return Warning{FilePath: path, Type: WarningEncodingError, Message: message}
}

const (
	maxErrorLocations = 5
	maxSnippetLen     = 200
)

// collectErrorLocations walks the tree in document order collecting error
// and missing nodes, capped at maxErrorLocations.
func collectErrorLocations(tree *sitter.Tree, source string) []WarningLocation {
	var locations []WarningLocation
	lines := strings.Split(source, "\n")

	cursor := tree.RootNode().Walk()
	defer cursor.Close()

	for {
		node := cursor.Node()
		if node.IsError() || node.IsMissing() {
			pos := node.StartPosition()

			snippet := ""
			if int(pos.Row) < len(lines) {
				snippet = strings.TrimRight(lines[pos.Row], " \t\r")
				if len(snippet) > maxSnippetLen {
					snippet = snippet[:maxSnippetLen]
				}
			}

			locations = append(locations, WarningLocation{
				Line:    int(pos.Row) + 1,
				Column:  int(pos.Column) + 1,
				Kind:    node.Kind(),
				Snippet: snippet,
			})

			if len(locations) >= maxErrorLocations {
				return locations
			}
		}

		if cursor.GotoFirstChild() {
			continue
		}

		for {
			if cursor.GotoNextSibling() {
				break
			}
			if !cursor.GotoParent() {
				return locations
			}
		}
	}
}
