// Package sqlfront turns SQL DDL text into the canonical AST consumed by
// planner and catalog tooling. Parsing is owned by the PostgreSQL grammar
// (libpg_query); this module owns the parse-tree-to-AST transformation:
// identifier case-folding, constraint cardinality validation, canonical type
// resolution, and source-span tracking.
package sqlfront

import (
	"github.com/sqlfront-engine/sqlfront/engine/ast"
	"github.com/sqlfront-engine/sqlfront/engine/astbuild"
	"github.com/sqlfront-engine/sqlfront/engine/cst"
	"github.com/sqlfront-engine/sqlfront/engine/frontend"
)

// Parse parses one SQL statement and builds its canonical AST.
// Returns:
//   - the statement AST (currently CREATE TABLE is the sole variant)
//   - error: frontend parse failure, or a *ast.ParseError with the exact
//     source position when the tree violates a builder invariant
func Parse(sql string) (ast.Statement, error) {
	root, err := frontend.Postgres(sql)
	if err != nil {
		return nil, err
	}
	return astbuild.Build(root)
}

// ParseTree builds the canonical AST from an already-parsed concrete tree,
// for callers that drive their own grammar frontend
func ParseTree(root *cst.Node) (ast.Statement, error) {
	return astbuild.Build(root)
}
