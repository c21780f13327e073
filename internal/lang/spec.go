// # internal/lang/spec.go
package lang

// NodeKindSpec is the per-language node-kind taxonomy used by metric
// extraction. Specs are built once at package init and shared read-only
// across all goroutines; there is no mutation after construction.
type NodeKindSpec struct {
	// Function-like declarations.
	FunctionKinds map[string]bool
	// Class/struct-like declarations.
	ClassKinds map[string]bool
	// Method-like declarations. May be empty: not every language
	// syntactically distinguishes methods from functions.
	MethodKinds map[string]bool
	// Decision points counted toward cyclomatic complexity.
	ControlFlowKinds map[string]bool
	// Comment nodes.
	CommentKinds map[string]bool
	// Nodes that add a level of nesting depth.
	NestingKinds map[string]bool
	// Kind of binary expressions whose operator may be a logical operator;
	// empty when the language has no such kind.
	BinaryExprKind string
	// Operator tokens inside BinaryExprKind counted as decision points.
	LogicalOperators map[string]bool
}

func kinds(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var specTable = map[Language]*NodeKindSpec{
	Rust: {
		FunctionKinds:    kinds("function_item"),
		ClassKinds:       kinds("struct_item", "enum_item", "impl_item"),
		MethodKinds:      kinds(),
		ControlFlowKinds: kinds("if_expression", "match_arm", "while_expression", "loop_expression", "for_expression"),
		CommentKinds:     kinds("line_comment", "block_comment"),
		NestingKinds:     kinds("block"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	},
	JavaScript: {
		FunctionKinds:    kinds("function_declaration", "function_expression", "arrow_function", "method_definition"),
		ClassKinds:       kinds("class_declaration"),
		MethodKinds:      kinds("method_definition"),
		ControlFlowKinds: kinds("if_statement", "for_statement", "for_in_statement", "while_statement", "do_statement", "switch_case", "catch_clause", "ternary_expression"),
		CommentKinds:     kinds("comment"),
		NestingKinds:     kinds("statement_block"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	},
	Python: {
		FunctionKinds:    kinds("function_definition"),
		ClassKinds:       kinds("class_definition"),
		MethodKinds:      kinds(),
		ControlFlowKinds: kinds("if_statement", "elif_clause", "for_statement", "while_statement", "except_clause", "conditional_expression", "case_clause"),
		CommentKinds:     kinds("comment"),
		NestingKinds:     kinds("block"),
		BinaryExprKind:   "boolean_operator",
		LogicalOperators: kinds("and", "or"),
	},
	Java: {
		FunctionKinds:    kinds("method_declaration", "constructor_declaration"),
		ClassKinds:       kinds("class_declaration", "interface_declaration", "enum_declaration"),
		MethodKinds:      kinds("method_declaration", "constructor_declaration"),
		ControlFlowKinds: kinds("if_statement", "for_statement", "enhanced_for_statement", "while_statement", "do_statement", "catch_clause", "ternary_expression", "switch_label"),
		CommentKinds:     kinds("line_comment", "block_comment"),
		NestingKinds:     kinds("block"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	},
	C: {
		FunctionKinds:    kinds("function_definition"),
		ClassKinds:       kinds("struct_specifier"),
		MethodKinds:      kinds(),
		ControlFlowKinds: kinds("if_statement", "for_statement", "while_statement", "do_statement", "case_statement", "conditional_expression"),
		CommentKinds:     kinds("comment"),
		NestingKinds:     kinds("compound_statement"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	},
	Cpp: {
		FunctionKinds:    kinds("function_definition"),
		ClassKinds:       kinds("class_specifier", "struct_specifier"),
		MethodKinds:      kinds("field_declaration"),
		ControlFlowKinds: kinds("if_statement", "for_statement", "for_range_loop", "while_statement", "do_statement", "case_statement", "conditional_expression", "catch_clause"),
		CommentKinds:     kinds("comment"),
		NestingKinds:     kinds("compound_statement"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	},
	Go: {
		FunctionKinds:    kinds("function_declaration", "method_declaration"),
		ClassKinds:       kinds("type_declaration"),
		MethodKinds:      kinds("method_declaration"),
		ControlFlowKinds: kinds("if_statement", "for_statement", "expression_case", "type_case", "communication_case"),
		CommentKinds:     kinds("comment"),
		NestingKinds:     kinds("block"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	},
}

func init() {
	ts := &NodeKindSpec{
		FunctionKinds:    kinds("function_declaration", "function_expression", "arrow_function", "method_definition", "method_signature"),
		ClassKinds:       kinds("class_declaration", "interface_declaration"),
		MethodKinds:      kinds("method_definition", "method_signature"),
		ControlFlowKinds: kinds("if_statement", "for_statement", "for_in_statement", "while_statement", "do_statement", "switch_case", "catch_clause", "ternary_expression"),
		CommentKinds:     kinds("comment"),
		NestingKinds:     kinds("statement_block"),
		BinaryExprKind:   "binary_expression",
		LogicalOperators: kinds("&&", "||"),
	}
	// TSX shares the TypeScript taxonomy; only the grammar differs.
	specTable[TypeScript] = ts
	specTable[TSX] = ts
}

// Spec returns the node-kind taxonomy for a language in O(1).
func Spec(l Language) *NodeKindSpec {
	return specTable[l]
}

// IsFunctionKind reports whether kind declares a function-like node.
func (s *NodeKindSpec) IsFunctionKind(kind string) bool { return s.FunctionKinds[kind] }

// IsClassKind reports whether kind declares a class/struct-like node.
func (s *NodeKindSpec) IsClassKind(kind string) bool { return s.ClassKinds[kind] }

// IsMethodKind reports whether kind declares a method-like node. A kind may
// belong to both the function and method sets (e.g. Go method_declaration).
func (s *NodeKindSpec) IsMethodKind(kind string) bool { return s.MethodKinds[kind] }

// IsControlFlowKind reports whether kind is a decision point.
func (s *NodeKindSpec) IsControlFlowKind(kind string) bool { return s.ControlFlowKinds[kind] }

// IsCommentKind reports whether kind is a comment node.
func (s *NodeKindSpec) IsCommentKind(kind string) bool { return s.CommentKinds[kind] }

// IsNestingKind reports whether kind adds a level of nesting depth.
func (s *NodeKindSpec) IsNestingKind(kind string) bool { return s.NestingKinds[kind] }
