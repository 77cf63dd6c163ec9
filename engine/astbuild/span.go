package astbuild

import (
	"fmt"

	"github.com/sqlfront-engine/sqlfront/engine/ast"
	"github.com/sqlfront-engine/sqlfront/engine/cst"
)

// spanOf derives a node's source span from its first and last tokens. Called
// exactly once per produced AST node; spans are plain value data afterwards.
func spanOf(node *cst.Node) ast.SourceSpan {
	return ast.SourceSpan{
		StartLine:   node.First.Line,
		StartColumn: node.First.Column,
		EndLine:     node.Last.Line,
		EndColumn:   node.Last.Column,
	}
}

// errAt raises a build failure located at the start of the node's span
func errAt(node *cst.Node, format string, args ...any) *ast.ParseError {
	return ast.NewParseError(spanOf(node), fmt.Sprintf(format, args...))
}

// errUnsupported signals a node kind with no AST-producing rule: either an
// intentionally unimplemented SQL feature or a grammar/builder mismatch.
func errUnsupported(node *cst.Node) *ast.ParseError {
	return errAt(node, "unsupported node kind %s", node.Kind)
}
