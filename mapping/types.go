// Package mapping holds the fixed lookup tables shared across the engine.
// Every table is constructed statically and never mutated, so concurrent
// traversals read them without locking.
package mapping

import (
	"strings"

	"github.com/sqlfront-engine/sqlfront/engine/ast"
)

// TypeTable - the closed canonical type resolution table
// Usage: TypeTable["INTEGER"] returns ast.TypeInteger
// Maps uppercase SQL type names to canonical type tags. A name outside this
// table is a hard error during AST building, never a fallback type.
// Floating-point types (REAL, FLOAT, DOUBLE PRECISION) are absent on purpose:
// the planner does not accept them yet.
var TypeTable = map[string]ast.TypeTag{
	// Numeric
	"INT":      ast.TypeInteger,
	"INTEGER":  ast.TypeInteger,
	"BIGINT":   ast.TypeBigint,
	"SMALLINT": ast.TypeSmallint,

	// Boolean
	"BOOLEAN": ast.TypeBoolean,
	"BOOL":    ast.TypeBoolean,

	// String
	"VARCHAR": ast.TypeVarchar,
	"TEXT":    ast.TypeText,
}

// ResolveType resolves a textual type name case-insensitively against the
// canonical table
func ResolveType(name string) (ast.TypeTag, bool) {
	tag, ok := TypeTable[strings.ToUpper(name)]
	return tag, ok
}
