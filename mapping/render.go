package mapping

import "github.com/sqlfront-engine/sqlfront/engine/ast"

// RenderTypeMap - dialect spellings for the canonical type tags
// Usage: RenderTypeMap["PostgreSQL"][ast.TypeInteger] returns "INTEGER"
// The inverse direction of TypeTable, used when rendering a built AST back
// into executable DDL for a target database.
var RenderTypeMap = map[string]map[ast.TypeTag]string{
	"PostgreSQL": {
		ast.TypeInteger:  "INTEGER",
		ast.TypeBigint:   "BIGINT",
		ast.TypeSmallint: "SMALLINT",
		ast.TypeBoolean:  "BOOLEAN",
		ast.TypeVarchar:  "VARCHAR",
		ast.TypeText:     "TEXT",
	},

	"MySQL": {
		ast.TypeInteger:  "INT",
		ast.TypeBigint:   "BIGINT",
		ast.TypeSmallint: "SMALLINT",
		ast.TypeBoolean:  "BOOLEAN",
		ast.TypeVarchar:  "VARCHAR(255)",
		ast.TypeText:     "TEXT",
	},
}

// DialectType returns the dialect spelling for a canonical type tag
func DialectType(tag ast.TypeTag, dbType string) (string, bool) {
	types, ok := RenderTypeMap[dbType]
	if !ok {
		return "", false
	}
	name, ok := types[tag]
	return name, ok
}
