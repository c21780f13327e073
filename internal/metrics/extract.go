// # internal/metrics/extract.go
package metrics

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codescope/internal/lang"
)

// countNodes walks the tree iteratively with a cursor, counting nodes whose
// kind satisfies isTarget. Stack-safe for arbitrarily deep trees.
func countNodes(root *sitter.Node, isTarget func(kind string) bool) int {
	count := 0
	cursor := root.Walk()
	defer cursor.Close()

	for {
		if isTarget(cursor.Node().Kind()) {
			count++
		}

		if cursor.GotoFirstChild() {
			continue
		}

		for {
			if cursor.GotoNextSibling() {
				break
			}
			if !cursor.GotoParent() {
				return count
			}
		}
	}
}

// CountFunctions counts function-like declarations.
func CountFunctions(root *sitter.Node, spec *lang.NodeKindSpec) int {
	return countNodes(root, spec.IsFunctionKind)
}

// CountMethods counts method-like declarations.
func CountMethods(root *sitter.Node, spec *lang.NodeKindSpec) int {
	return countNodes(root, spec.IsMethodKind)
}

// CountClasses counts class/struct-like declarations.
func CountClasses(root *sitter.Node, spec *lang.NodeKindSpec) int {
	return countNodes(root, spec.IsClassKind)
}

// CyclomaticComplexity returns 1 plus the number of decision points: every
// control-flow node, plus every binary expression whose operator token is a
// logical operator. A nil tree yields the minimum complexity of 1.
func CyclomaticComplexity(tree *sitter.Tree, spec *lang.NodeKindSpec) int {
	if tree == nil {
		return 1
	}
	return 1 + countNodes(tree.RootNode(), func(kind string) bool {
		return spec.IsControlFlowKind(kind)
	}) + countLogicalOperators(tree.RootNode(), spec)
}

func countLogicalOperators(root *sitter.Node, spec *lang.NodeKindSpec) int {
	if spec.BinaryExprKind == "" || len(spec.LogicalOperators) == 0 {
		return 0
	}

	count := 0
	cursor := root.Walk()
	defer cursor.Close()

	for {
		node := cursor.Node()
		if node.Kind() == spec.BinaryExprKind {
			if op := node.ChildByFieldName("operator"); op != nil && spec.LogicalOperators[op.Kind()] {
				count++
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
				return count
			}
		}
	}
}

// CommentLines returns the number of distinct source lines covered by
// comment nodes. Multi-line comments contribute each spanned line once.
func CommentLines(tree *sitter.Tree, spec *lang.NodeKindSpec) int {
	if tree == nil {
		return 0
	}

	seen := make(map[uint]struct{})
	cursor := tree.RootNode().Walk()
	defer cursor.Close()

	for {
		node := cursor.Node()
		if spec.IsCommentKind(node.Kind()) {
			for row := node.StartPosition().Row; row <= node.EndPosition().Row; row++ {
				seen[row] = struct{}{}
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
				return len(seen)
			}
		}
	}
}

// MaxNestingDepth returns the deepest stack of nesting-kind nodes anywhere
// in the tree. A file with no nesting nodes has depth 0.
func MaxNestingDepth(tree *sitter.Tree, spec *lang.NodeKindSpec) int {
	if tree == nil {
		return 0
	}

	depth, max := 0, 0
	cursor := tree.RootNode().Walk()
	defer cursor.Close()

	for {
		nesting := spec.IsNestingKind(cursor.Node().Kind())
		if nesting {
			depth++
			if depth > max {
				max = depth
			}
		}

		if cursor.GotoFirstChild() {
			continue
		}

		// Leaving the current leaf.
		if nesting {
			depth--
		}

		for {
			if cursor.GotoNextSibling() {
				break
			}
			if !cursor.GotoParent() {
				return max
			}
			// Leaving the parent we just ascended to.
			if spec.IsNestingKind(cursor.Node().Kind()) {
				depth--
			}
		}
	}
}

// LineCounts is the text-level line classification. Comments is a prefix
// heuristic used only when no syntax tree is available.
type LineCounts struct {
	Blank    int
	NonBlank int
	Comments int
}

// CountLines classifies every line of source text. Trailing newlines do not
// produce a phantom final line.
func CountLines(source string) LineCounts {
	var counts LineCounts
	for _, line := range splitLines(source) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			counts.Blank++
			continue
		}
		counts.NonBlank++
		if isCommentLine(trimmed) {
			counts.Comments++
		}
	}
	return counts
}

func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// isCommentLine is a best-effort prefix check over a trimmed line.
func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "/*") ||
		strings.HasPrefix(line, "*/") ||
		strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "<!--") ||
		strings.HasPrefix(line, "-->")
}

// Extract computes every tree-derived metric plus the text-level line
// classification and fills in the complexity score. Line counts always come
// from the original source text; tree may be the sanitized re-parse, whose
// rewrites preserve line positions.
func Extract(tree *sitter.Tree, source string, l lang.Language) FileAnalysis {
	spec := lang.Spec(l)
	counts := CountLines(source)

	commentLines := counts.Comments
	if tree != nil {
		commentLines = CommentLines(tree, spec)
	}

	linesOfCode := counts.NonBlank - commentLines
	if linesOfCode < 0 {
		linesOfCode = 0
	}

	analysis := FileAnalysis{
		Language:             l.DisplayName(),
		LinesOfCode:          linesOfCode,
		BlankLines:           counts.Blank,
		CommentLines:         commentLines,
		CyclomaticComplexity: CyclomaticComplexity(tree, spec),
		MaxNestingDepth:      MaxNestingDepth(tree, spec),
	}

	if tree != nil {
		root := tree.RootNode()
		analysis.Functions = CountFunctions(root, spec)
		analysis.Methods = CountMethods(root, spec)
		analysis.Classes = CountClasses(root, spec)
	}

	analysis.ComplexityScore = Score(&analysis)
	return analysis
}
