// Package cst defines the concrete parse tree contract between the grammar
// frontend and the AST builder. One node per grammar production, no semantic
// normalization: case-folding, type resolution, and constraint validation all
// happen downstream in the builder.
package cst

// Kind identifies the grammar production a parse-tree node was derived from
type Kind int

const (
	KindStatement Kind = iota // single-statement wrapper
	KindCreateTable
	KindTableName
	KindIfNotExists // marker, present only when the source carries IF NOT EXISTS
	KindColumnDefinition
	KindConstraintPrimaryKey
	KindConstraintNotNull
	KindConstraintUnique  // recognized, not buildable
	KindConstraintDefault // recognized, not buildable
	KindConstraintCheck   // recognized, not buildable
	KindIdentifier // unquoted
	KindQuotedIdentifier
	KindDataType
	KindParametrizedDataType // wraps its base data-type child
	KindTableConstraint      // table-level constraint, not buildable
	KindCreateTableAsQuery   // CREATE TABLE ... AS SELECT, not buildable
	KindPartitionBy          // not buildable
	KindClusterBy            // not buildable
	KindTemporary            // TEMP/TEMPORARY persistence, not buildable
	KindUnlogged             // not buildable
	KindInherits             // INHERITS (...), not buildable
	KindStorageParameters    // WITH (...), not buildable
	KindOnCommit             // ON COMMIT ..., not buildable
	KindTablespace           // TABLESPACE ..., not buildable
	KindTypedTable           // OF type_name, not buildable
	KindPartitionBound       // PARTITION OF parent, not buildable
	KindAccessMethod         // USING access_method, not buildable
)

// String returns the grammar-facing name of the node kind
func (k Kind) String() string {
	names := []string{
		"statement",
		"create-table",
		"table-name",
		"if-not-exists",
		"column-definition",
		"column-constraint-primary-key",
		"column-constraint-not-null",
		"column-constraint-unique",
		"column-constraint-default",
		"column-constraint-check",
		"identifier",
		"quoted-identifier",
		"data-type",
		"parametrized-data-type",
		"table-constraint",
		"create-table-as-query",
		"partition-by",
		"cluster-by",
		"temporary",
		"unlogged",
		"inherits",
		"storage-parameters",
		"on-commit",
		"tablespace",
		"typed-table",
		"partition-bound",
		"access-method",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Token is a single source token with 1-based position info
type Token struct {
	Text   string
	Line   int // 1-indexed
	Column int // 1-indexed
}

// Node is one node of the concrete parse tree. Children appear in source
// order. First and Last are the node's first and last source tokens; every
// AST span is derived from them exactly once, at build time.
type Node struct {
	Kind     Kind
	Text     string // raw token text, set on identifier leaves
	Children []*Node
	First    Token
	Last     Token
}
