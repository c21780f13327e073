// # internal/parser/parse.go
package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codescope/internal/core/errors"
	"codescope/internal/lang"
)

// ParseSource parses source with error recovery. A cleanly parsing file
// returns its tree directly. On parse errors a sanitized variant is tried;
// if that parses cleanly its tree is returned (rewrites are line-preserving,
// so positions stay valid for the original text). Otherwise the original
// tree is kept and a syntax warning with up to five error locations is
// attached. The caller owns the returned tree and must Close it.
func ParseSource(p *sitter.Parser, source []byte, l lang.Language, path string) (*sitter.Tree, []Warning, error) {
	text := string(source)

	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, nil, errors.Wrap(
			fmt.Errorf("tree-sitter returned no tree"),
			errors.CodeParseFailed, "failed to parse file",
		)
	}

	if !tree.RootNode().HasError() {
		return tree, nil, nil
	}

	if sanitized := Sanitize(text, l); sanitized != text {
		if sanitizedTree := p.Parse([]byte(sanitized), nil); sanitizedTree != nil {
			if !sanitizedTree.RootNode().HasError() {
				tree.Close()
				return sanitizedTree, nil, nil
			}
			sanitizedTree.Close()
		}
	}

	locations := collectErrorLocations(tree, text)
	message := "Parse errors detected, results may be incomplete"
	if len(locations) > 0 {
		first := locations[0]
		message = fmt.Sprintf("Parse errors detected near %d:%d (%s)", first.Line, first.Column, first.Kind)
	}

	return tree, []Warning{syntaxWarning(path, message, locations)}, nil
}
