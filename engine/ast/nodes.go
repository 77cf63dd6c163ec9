// Package ast holds the canonical AST handed to the planner/catalog layer.
// Every node is immutable once constructed and carries the source span it
// was derived from, so diagnostics anywhere downstream can point at the
// offending source text without re-walking the tree.
package ast

// SourceSpan locates a node in the source statement, 1-based, derived once
// from the first and last token of the concrete parse-tree node
type SourceSpan struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// TypeTag is the closed set of canonical column types the planner accepts
type TypeTag int

const (
	TypeInteger TypeTag = iota
	TypeBigint
	TypeSmallint
	TypeBoolean
	TypeVarchar
	TypeText
)

// String returns the canonical type name
func (t TypeTag) String() string {
	names := []string{
		"INTEGER",
		"BIGINT",
		"SMALLINT",
		"BOOLEAN",
		"VARCHAR",
		"TEXT",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "UNKNOWN"
}

// Identifier is a resolved name. Unquoted source identifiers arrive here
// already lowercased; quoted ones keep their original case byte-for-byte.
type Identifier struct {
	Name string
	Span SourceSpan
}

// DataType is a resolved canonical type
type DataType struct {
	Tag  TypeTag
	Span SourceSpan
}

// ConstraintKind tags a column constraint variant
type ConstraintKind int

const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintNotNull
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPrimaryKey:
		return "PRIMARY_KEY"
	case ConstraintNotNull:
		return "NOT_NULL"
	}
	return "UNKNOWN"
}

// ColumnConstraint carries only its kind and position; cardinality is
// enforced by the column definition, the only level that sees all siblings
type ColumnConstraint struct {
	Kind ConstraintKind
	Span SourceSpan
}

// Nullability is the column-level policy resolved from declared constraints.
// Only NOT NULL affects it; PRIMARY KEY alone stays Nullable.
type Nullability int

const (
	Nullable Nullability = iota
	NotNullable
)

func (n Nullability) String() string {
	if n == NotNullable {
		return "NOT_NULLABLE"
	}
	return "NULLABLE"
}

// ColumnDefinition is one table element. It is never constructed with zero
// or more than one declared constraint.
type ColumnDefinition struct {
	Name        Identifier
	Type        DataType
	Nullability Nullability
	Span        SourceSpan
}

// Statement is the interface all statement AST roots implement
type Statement interface {
	stmtNode()
	StatementSpan() SourceSpan
}

// CreateTable is the CREATE TABLE statement AST. Columns mirror source
// order; planner-visible column order equals declaration order.
type CreateTable struct {
	Name        Identifier
	IfNotExists bool
	Columns     []ColumnDefinition
	Span        SourceSpan
}

func (*CreateTable) stmtNode() {}

// StatementSpan implements Statement
func (s *CreateTable) StatementSpan() SourceSpan { return s.Span }
