package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlfront-engine/sqlfront/engine/cst"
)

func parseCreateTable(t *testing.T, sql string) *cst.Node {
	t.Helper()
	root, err := Postgres(sql)
	require.NoError(t, err)
	require.Equal(t, cst.KindStatement, root.Kind)
	require.Len(t, root.Children, 1)
	ct := root.Children[0]
	require.Equal(t, cst.KindCreateTable, ct.Kind)
	return ct
}

func childrenOfKind(node *cst.Node, kind cst.Kind) []*cst.Node {
	var out []*cst.Node
	for _, c := range node.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func TestPostgres_CreateTableShape(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (a INT NOT NULL)")

	assert.Equal(t, cst.Token{Text: "CREATE", Line: 1, Column: 1}, ct.First)
	assert.Equal(t, cst.Token{Text: ")", Line: 1, Column: 31}, ct.Last)

	names := childrenOfKind(ct, cst.KindTableName)
	require.Len(t, names, 1)
	require.Len(t, names[0].Children, 1)
	id := names[0].Children[0]
	assert.Equal(t, cst.KindIdentifier, id.Kind)
	assert.Equal(t, "t", id.Text)
	assert.Equal(t, 14, id.First.Column)

	cols := childrenOfKind(ct, cst.KindColumnDefinition)
	require.Len(t, cols, 1)
	col := cols[0]
	assert.Equal(t, cst.Token{Text: "a", Line: 1, Column: 17}, col.First)
	assert.Equal(t, cst.Token{Text: "NULL", Line: 1, Column: 27}, col.Last)

	require.Len(t, col.Children, 3)
	assert.Equal(t, cst.KindIdentifier, col.Children[0].Kind)
	assert.Equal(t, "a", col.Children[0].Text)

	dt := col.Children[1]
	assert.Equal(t, cst.KindDataType, dt.Kind)
	require.Len(t, dt.Children, 1)
	assert.Equal(t, "INT", dt.Children[0].Text)
	assert.Equal(t, 19, dt.First.Column)

	con := col.Children[2]
	assert.Equal(t, cst.KindConstraintNotNull, con.Kind)
	assert.Equal(t, 23, con.First.Column)
	assert.Equal(t, 27, con.Last.Column)
}

func TestPostgres_TrailingSemicolonIgnored(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (a INT NOT NULL);")
	assert.Equal(t, ")", ct.Last.Text)
	assert.Equal(t, 31, ct.Last.Column)
}

func TestPostgres_MultiLinePositions(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (\n  a INT NOT NULL\n)")

	cols := childrenOfKind(ct, cst.KindColumnDefinition)
	require.Len(t, cols, 1)
	assert.Equal(t, 2, cols[0].First.Line)
	assert.Equal(t, 3, cols[0].First.Column)
	assert.Equal(t, 3, ct.Last.Line)
}

func TestPostgres_IfNotExists(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE IF NOT EXISTS t (a INT)")

	markers := childrenOfKind(ct, cst.KindIfNotExists)
	require.Len(t, markers, 1)
	assert.Equal(t, cst.Token{Text: "IF", Line: 1, Column: 14}, markers[0].First)
	assert.Equal(t, cst.Token{Text: "EXISTS", Line: 1, Column: 21}, markers[0].Last)
}

func TestPostgres_QuotedIdentifier(t *testing.T) {
	ct := parseCreateTable(t, `CREATE TABLE "MixedCase" ("Col" INT NOT NULL)`)

	id := childrenOfKind(ct, cst.KindTableName)[0].Children[0]
	assert.Equal(t, cst.KindQuotedIdentifier, id.Kind)
	assert.Equal(t, "MixedCase", id.Text)

	col := childrenOfKind(ct, cst.KindColumnDefinition)[0]
	assert.Equal(t, cst.KindQuotedIdentifier, col.Children[0].Kind)
	assert.Equal(t, "Col", col.Children[0].Text)
}

// Unquoted identifiers reach the tree in raw source spelling; folding is the
// builder's job, not the frontend's.
func TestPostgres_UnquotedIdentifierKeepsRawSpelling(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE MixedCase (a INT NOT NULL)")

	id := childrenOfKind(ct, cst.KindTableName)[0].Children[0]
	assert.Equal(t, cst.KindIdentifier, id.Kind)
	assert.Equal(t, "MixedCase", id.Text)
}

func TestPostgres_ParametrizedType(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (v VARCHAR(255) NOT NULL)")

	col := childrenOfKind(ct, cst.KindColumnDefinition)[0]
	dt := col.Children[1]
	require.Equal(t, cst.KindParametrizedDataType, dt.Kind)
	assert.Equal(t, "VARCHAR", dt.First.Text)
	assert.Equal(t, cst.Token{Text: ")", Line: 1, Column: 30}, dt.Last)

	require.Len(t, dt.Children, 1)
	base := dt.Children[0]
	assert.Equal(t, cst.KindDataType, base.Kind)
	assert.Equal(t, "VARCHAR", base.Children[0].Text)
}

func TestPostgres_ColumnConstraints(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (a INT PRIMARY KEY, b INT UNIQUE, c INT DEFAULT 0)")

	cols := childrenOfKind(ct, cst.KindColumnDefinition)
	require.Len(t, cols, 3)
	assert.Equal(t, cst.KindConstraintPrimaryKey, cols[0].Children[2].Kind)
	assert.Equal(t, "KEY", cols[0].Children[2].Last.Text)
	assert.Equal(t, cst.KindConstraintUnique, cols[1].Children[2].Kind)
	assert.Equal(t, cst.KindConstraintDefault, cols[2].Children[2].Kind)
}

func TestPostgres_TableConstraint(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (a INT NOT NULL, PRIMARY KEY (a))")

	cons := childrenOfKind(ct, cst.KindTableConstraint)
	require.Len(t, cons, 1)
	assert.Equal(t, "PRIMARY", cons[0].First.Text)
}

func TestPostgres_QualifiedTableName(t *testing.T) {
	_, err := Postgres("CREATE TABLE myschema.t (a INT NOT NULL)")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "schema-qualified")
}

// Clauses the builder cannot consume must surface as marker nodes, never be
// dropped from the tree.
func TestPostgres_UnsupportedTableClauses(t *testing.T) {
	cases := map[string]cst.Kind{
		"CREATE TABLE t (a INT NOT NULL) WITH (fillfactor=70)": cst.KindStorageParameters,
		"CREATE TABLE t (a INT NOT NULL) INHERITS (parent)":    cst.KindInherits,
		"CREATE TABLE t (a INT NOT NULL) TABLESPACE fast":      cst.KindTablespace,
		"CREATE TABLE t (a INT NOT NULL) USING heap":           cst.KindAccessMethod,
		"CREATE TEMP TABLE t (a INT NOT NULL)":                 cst.KindTemporary,
		"CREATE UNLOGGED TABLE t (a INT NOT NULL)":             cst.KindUnlogged,
		"CREATE TEMP TABLE t (a INT NOT NULL) ON COMMIT DROP":  cst.KindOnCommit,
		"CREATE TABLE t OF pair":                               cst.KindTypedTable,
	}
	for sql, kind := range cases {
		ct := parseCreateTable(t, sql)
		require.Len(t, childrenOfKind(ct, kind), 1, "missing %s marker for %q", kind, sql)
	}
}

// A trailing parenthesized clause must not drag the last column's span past
// the element list's closing paren.
func TestPostgres_TrailingClauseKeepsColumnSpan(t *testing.T) {
	ct := parseCreateTable(t, "CREATE TABLE t (a INT NOT NULL) WITH (fillfactor=70)")

	cols := childrenOfKind(ct, cst.KindColumnDefinition)
	require.Len(t, cols, 1)
	assert.Equal(t, cst.Token{Text: "NULL", Line: 1, Column: 27}, cols[0].Last)
}

// Columns count characters, not bytes.
func TestPostgres_MultibyteColumns(t *testing.T) {
	ct := parseCreateTable(t, `CREATE TABLE "tä" (a INT NOT NULL)`)

	id := childrenOfKind(ct, cst.KindTableName)[0].Children[0]
	assert.Equal(t, cst.KindQuotedIdentifier, id.Kind)
	assert.Equal(t, "tä", id.Text)
	assert.Equal(t, 14, id.First.Column)

	col := childrenOfKind(ct, cst.KindColumnDefinition)[0]
	assert.Equal(t, 20, col.First.Column)
}

func TestPostgres_CreateTableAsQuery(t *testing.T) {
	root, err := Postgres("CREATE TABLE t AS SELECT 1")
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, cst.KindCreateTableAsQuery, root.Children[0].Kind)
}

func TestPostgres_UnsupportedStatement(t *testing.T) {
	_, err := Postgres("SELECT 1")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestPostgres_SyntaxError(t *testing.T) {
	_, err := Postgres("CREATE TABLE (")
	require.ErrorIs(t, err, ErrParse)
}

func TestPostgres_MultipleStatements(t *testing.T) {
	_, err := Postgres("SELECT 1; SELECT 2")
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "single statement")
}

func TestPostgres_EmptyInput(t *testing.T) {
	_, err := Postgres("")
	require.ErrorIs(t, err, ErrParse)
}

func TestDebugTree(t *testing.T) {
	out, err := DebugTree("CREATE TABLE t (a INT NOT NULL)")
	require.NoError(t, err)
	assert.Contains(t, out, "CreateStmt")
	assert.Contains(t, out, "relname")
}

func TestNewLineIndex(t *testing.T) {
	s := &source{sql: "ab\ncd\n", lines: newLineIndex("ab\ncd\n")}
	line, col := s.position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
	line, col = s.position(4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}
