// # internal/lang/grammar.go
package lang

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Grammar returns the tree-sitter grammar for a language. Grammar values wrap
// static C tables and are safe to share; parsers are not.
func Grammar(l Language) (*sitter.Language, error) {
	switch l {
	case Rust:
		return sitter.NewLanguage(tree_sitter_rust.Language()), nil
	case JavaScript:
		return sitter.NewLanguage(tree_sitter_javascript.Language()), nil
	case TypeScript:
		return sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), nil
	case TSX:
		return sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()), nil
	case Python:
		return sitter.NewLanguage(tree_sitter_python.Language()), nil
	case Java:
		return sitter.NewLanguage(tree_sitter_java.Language()), nil
	case C:
		return sitter.NewLanguage(tree_sitter_c.Language()), nil
	case Cpp:
		return sitter.NewLanguage(tree_sitter_cpp.Language()), nil
	case Go:
		return sitter.NewLanguage(tree_sitter_go.Language()), nil
	default:
		return nil, fmt.Errorf("no grammar for language %q", l)
	}
}

// NewParser constructs a fresh parser configured for the language. Parser
// objects are not safe for concurrent use; each concurrent task constructs
// its own and closes it when done.
func NewParser(l Language) (*sitter.Parser, error) {
	grammar, err := Grammar(l)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	if err := parser.SetLanguage(grammar); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to load %s grammar: %w", l, err)
	}
	return parser, nil
}
