// Package astbuild converts one concrete parse tree into the canonical AST.
// The traversal is a single bottom-up depth-first pass: children are built
// before their parent composes them, no node is visited twice, and no state
// survives across invocations, so independent trees can be built
// concurrently without locking.
package astbuild

import (
	"fmt"
	"strings"

	"github.com/sqlfront-engine/sqlfront/engine/ast"
	"github.com/sqlfront-engine/sqlfront/engine/cst"
	"github.com/sqlfront-engine/sqlfront/mapping"
)

// Build converts a concrete parse tree rooted at a single statement into the
// statement's AST, or fails with a position-annotated *ast.ParseError. The
// first failure anywhere in the traversal aborts the whole statement; there
// is no partial recovery and no error aggregation.
func Build(root *cst.Node) (ast.Statement, error) {
	stmt := root
	if stmt.Kind == cst.KindStatement {
		if len(stmt.Children) != 1 {
			return nil, errAt(stmt, "statement wrapper must hold exactly one statement, found %d", len(stmt.Children))
		}
		stmt = stmt.Children[0]
	}

	switch stmt.Kind {
	case cst.KindCreateTable:
		return buildCreateTable(stmt)
	default:
		return nil, errUnsupported(stmt)
	}
}

// ============================================================================
// STATEMENTS
// ============================================================================

func buildCreateTable(node *cst.Node) (*ast.CreateTable, error) {
	stmt := &ast.CreateTable{Span: spanOf(node)}

	var haveName bool
	for _, child := range node.Children {
		switch child.Kind {
		case cst.KindTableName:
			name, err := buildTableName(child)
			if err != nil {
				return nil, err
			}
			stmt.Name = name
			haveName = true
		case cst.KindIfNotExists:
			// Flag follows token presence alone, no default inference.
			stmt.IfNotExists = true
		case cst.KindColumnDefinition:
			col, err := buildColumnDefinition(child)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		default:
			// Table constraints, partitioning, clustering and anything else
			// the grammar may emit here are not wired into the builder yet.
			return nil, errUnsupported(child)
		}
	}

	if !haveName {
		return nil, errAt(node, "create table statement is missing its table name")
	}
	return stmt, nil
}

func buildTableName(node *cst.Node) (ast.Identifier, error) {
	if len(node.Children) != 1 {
		return ast.Identifier{}, errAt(node, "table name must hold exactly one identifier, found %d", len(node.Children))
	}
	return buildIdentifier(node.Children[0])
}

// ============================================================================
// COLUMN / CONSTRAINT DEFINITION
// ============================================================================

func buildColumnDefinition(node *cst.Node) (ast.ColumnDefinition, error) {
	def := ast.ColumnDefinition{Span: spanOf(node)}

	var (
		constraints        []ast.ColumnConstraint
		haveName, haveType bool
	)
	for _, child := range node.Children {
		switch child.Kind {
		case cst.KindIdentifier, cst.KindQuotedIdentifier:
			name, err := buildIdentifier(child)
			if err != nil {
				return ast.ColumnDefinition{}, err
			}
			def.Name = name
			haveName = true
		case cst.KindDataType, cst.KindParametrizedDataType:
			typ, err := buildDataType(child)
			if err != nil {
				return ast.ColumnDefinition{}, err
			}
			def.Type = typ
			haveType = true
		default:
			con, err := buildColumnConstraint(child)
			if err != nil {
				return ast.ColumnDefinition{}, err
			}
			constraints = append(constraints, con)
		}
	}

	if !haveName || !haveType {
		return ast.ColumnDefinition{}, errAt(node, "column definition requires a name and a data type")
	}

	// Exactly one constraint per column; the grammar cannot enforce this.
	if len(constraints) != 1 {
		return ast.ColumnDefinition{}, errAt(node,
			"invalid constraint cardinality: expected exactly one column constraint, found %d", len(constraints))
	}

	// Only NOT NULL affects nullability. PRIMARY KEY alone stays nullable;
	// that mirrors the upstream planner contract as literally implemented.
	if constraints[0].Kind == ast.ConstraintNotNull {
		def.Nullability = ast.NotNullable
	} else {
		def.Nullability = ast.Nullable
	}
	return def, nil
}

func buildColumnConstraint(node *cst.Node) (ast.ColumnConstraint, error) {
	switch node.Kind {
	case cst.KindConstraintPrimaryKey:
		return ast.ColumnConstraint{Kind: ast.ConstraintPrimaryKey, Span: spanOf(node)}, nil
	case cst.KindConstraintNotNull:
		return ast.ColumnConstraint{Kind: ast.ConstraintNotNull, Span: spanOf(node)}, nil
	default:
		return ast.ColumnConstraint{}, errUnsupported(node)
	}
}

// ============================================================================
// IDENTIFIERS / TYPES
// ============================================================================

// buildIdentifier is the single point where quoted and unquoted identifiers
// diverge: the distinction is a property of the concrete token and cannot be
// recovered once the node collapses to a plain string. Case-folding follows
// the postgres rules: unquoted folds to lower case (locale-invariant),
// quoted is preserved verbatim.
func buildIdentifier(node *cst.Node) (ast.Identifier, error) {
	switch node.Kind {
	case cst.KindIdentifier:
		return ast.Identifier{Name: strings.ToLower(node.Text), Span: spanOf(node)}, nil
	case cst.KindQuotedIdentifier:
		return ast.Identifier{Name: node.Text, Span: spanOf(node)}, nil
	default:
		return ast.Identifier{}, errUnsupported(node)
	}
}

func buildDataType(node *cst.Node) (ast.DataType, error) {
	if node.Kind == cst.KindParametrizedDataType {
		// Length/precision parameters are not part of the canonical type;
		// unwrap to the base type node.
		for _, child := range node.Children {
			if child.Kind == cst.KindDataType {
				return buildDataType(child)
			}
		}
		return ast.DataType{}, errAt(node, "parametrized data type is missing its base type")
	}
	if node.Kind != cst.KindDataType {
		return ast.DataType{}, errUnsupported(node)
	}
	if len(node.Children) != 1 {
		return ast.DataType{}, errAt(node, "data type must hold exactly one identifier, found %d", len(node.Children))
	}

	// Resolution is case-insensitive on the raw token text, independent of
	// the case-folding applied when building identifier values.
	name := node.Children[0].Text
	tag, ok := mapping.ResolveType(name)
	if !ok {
		msg := fmt.Sprintf("unsupported type name '%s'", name)
		if suggestion := mapping.SuggestType(name); suggestion != "" {
			msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
		}
		return ast.DataType{}, ast.NewParseError(spanOf(node), msg)
	}
	return ast.DataType{Tag: tag, Span: spanOf(node)}, nil
}
