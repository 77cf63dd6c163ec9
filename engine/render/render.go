// Package render turns a built AST back into executable DDL for a target
// database. The output always quotes identifiers so the case resolved during
// building survives the round trip.
package render

import (
	"fmt"
	"strings"

	"github.com/sqlfront-engine/sqlfront/engine/ast"
	"github.com/sqlfront-engine/sqlfront/mapping"
)

// SQL renders a statement for the given database dialect
func SQL(stmt ast.Statement, dbType string) (string, error) {
	switch st := stmt.(type) {
	case *ast.CreateTable:
		return createTable(st, dbType)
	default:
		return "", fmt.Errorf("cannot render statement type %T", stmt)
	}
}

func createTable(stmt *ast.CreateTable, dbType string) (string, error) {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if stmt.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(quoteIdent(stmt.Name.Name, dbType))

	cols := make([]string, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		typeName, ok := mapping.DialectType(col.Type.Tag, dbType)
		if !ok {
			return "", fmt.Errorf("no %s spelling for type %s", dbType, col.Type.Tag)
		}
		def := fmt.Sprintf("%s %s", quoteIdent(col.Name.Name, dbType), typeName)
		if col.Nullability == ast.NotNullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}

	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(")")
	return sb.String(), nil
}

// quoteIdent quotes an identifier in the dialect's style
func quoteIdent(name, dbType string) string {
	if dbType == "MySQL" {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
