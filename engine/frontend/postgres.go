// Package frontend adapts a real grammar-driven parser to the concrete
// parse tree contract. Parsing and tokenizing are owned entirely by
// libpg_query (the PostgreSQL grammar); this package only reshapes its
// output, it never re-tokenizes the source.
package frontend

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	pg_query "github.com/pganalyze/pg_query_go/v5"

	"github.com/sqlfront-engine/sqlfront/engine/cst"
)

// ============================================================================
// ERRORS
// ============================================================================

var (
	ErrParse       = errors.New("failed to parse statement")
	ErrUnsupported = errors.New("statement not supported")
)

// ============================================================================
// ENTRY POINT
// ============================================================================

// Postgres parses one SQL statement with the PostgreSQL grammar and reshapes
// the result into the concrete parse tree consumed by the AST builder.
func Postgres(sql string) (*cst.Node, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(tree.Stmts) == 0 {
		return nil, fmt.Errorf("%w: no statements", ErrParse)
	}
	if len(tree.Stmts) > 1 {
		return nil, fmt.Errorf("%w: expected a single statement, found %d", ErrParse, len(tree.Stmts))
	}

	scan, err := pg_query.Scan(sql)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	src := &source{sql: sql, tokens: scan.GetTokens(), lines: newLineIndex(sql)}
	if len(src.tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens", ErrParse)
	}

	stmt := tree.Stmts[0].Stmt
	var node *cst.Node
	switch {
	case stmt.GetCreateStmt() != nil:
		node, err = src.createTable(stmt.GetCreateStmt())
	case stmt.GetCreateTableAsStmt() != nil:
		// Recognized by the grammar, rejected by the builder.
		node = src.statementMarker(cst.KindCreateTableAsQuery)
	default:
		return nil, fmt.Errorf("%w: unsupported statement type", ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}

	return &cst.Node{
		Kind:     cst.KindStatement,
		Children: []*cst.Node{node},
		First:    node.First,
		Last:     node.Last,
	}, nil
}

// ============================================================================
// SOURCE - token stream plus position index
// ============================================================================

type source struct {
	sql    string
	tokens []*pg_query.ScanToken
	lines  []int // byte offset of each line start
}

func newLineIndex(sql string) []int {
	lines := []int{0}
	for i := 0; i < len(sql); i++ {
		if sql[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// position converts a byte offset to a 1-based line and character column.
// Columns count runes, not bytes, so multibyte text earlier on the line does
// not shift diagnostics.
func (s *source) position(off int) (line, column int) {
	i := 0
	for i+1 < len(s.lines) && s.lines[i+1] <= off {
		i++
	}
	return i + 1, utf8.RuneCountInString(s.sql[s.lines[i]:off]) + 1
}

// tokenIndexAt finds the scan token starting at a parse-tree location
func (s *source) tokenIndexAt(off int) (int, error) {
	for i, t := range s.tokens {
		if int(t.Start) == off {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no token at offset %d", ErrParse, off)
}

func (s *source) tok(i int) cst.Token {
	t := s.tokens[i]
	line, column := s.position(int(t.Start))
	return cst.Token{
		Text:   s.sql[t.Start:t.End],
		Line:   line,
		Column: column,
	}
}

// lastMeaningful is the statement's last token, skipping a trailing semicolon
func (s *source) lastMeaningful() cst.Token {
	i := len(s.tokens) - 1
	for i > 0 && s.sql[s.tokens[i].Start:s.tokens[i].End] == ";" {
		i--
	}
	return s.tok(i)
}

// lastTokenBefore returns the last non-separator token ending at or before
// the byte offset. Used to close out element spans at sibling boundaries.
func (s *source) lastTokenBefore(end int) cst.Token {
	last := 0
	for i, t := range s.tokens {
		if int(t.End) > end {
			break
		}
		if s.sql[t.Start:t.End] == "," {
			continue
		}
		last = i
	}
	return s.tok(last)
}

// statementMarker covers the whole statement with a single childless node
func (s *source) statementMarker(kind cst.Kind) *cst.Node {
	return &cst.Node{Kind: kind, First: s.tok(0), Last: s.lastMeaningful()}
}

// ============================================================================
// NODE CONVERSION
// ============================================================================

func (s *source) createTable(stmt *pg_query.CreateStmt) (*cst.Node, error) {
	if stmt.Relation == nil {
		return nil, fmt.Errorf("%w: create table without a relation", ErrParse)
	}
	// The name contract is single-part; reading only the token at
	// Relation.Location would keep the schema and drop the table name.
	if stmt.Relation.Catalogname != "" || stmt.Relation.Schemaname != "" {
		return nil, fmt.Errorf("%w: schema-qualified table name", ErrUnsupported)
	}

	node := &cst.Node{Kind: cst.KindCreateTable, First: s.tok(0), Last: s.lastMeaningful()}

	nameIdent, err := s.identifier(int(stmt.Relation.Location))
	if err != nil {
		return nil, err
	}
	tableName := &cst.Node{
		Kind:     cst.KindTableName,
		Children: []*cst.Node{nameIdent},
		First:    nameIdent.First,
		Last:     nameIdent.Last,
	}
	node.Children = append(node.Children, tableName)

	if stmt.IfNotExists {
		marker, err := s.ifNotExists(int(stmt.Relation.Location))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, marker)
	}

	// Element boundaries: each table element's span runs up to the next
	// element's start, the last one up to the table's closing paren.
	bounds, err := s.elementBounds(stmt.TableElts)
	if err != nil {
		return nil, err
	}
	for i, elt := range stmt.TableElts {
		var child *cst.Node
		switch {
		case elt.GetColumnDef() != nil:
			child, err = s.columnDefinition(elt.GetColumnDef(), bounds[i])
		case elt.GetConstraint() != nil:
			child, err = s.tableConstraint(elt.GetConstraint(), bounds[i])
		default:
			return nil, fmt.Errorf("%w: unsupported table element", ErrUnsupported)
		}
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	if stmt.Partspec != nil {
		node.Children = append(node.Children, s.statementMarker(cst.KindPartitionBy))
	}

	// Every other clause the grammar accepts here gets a marker too, so the
	// build fails on it instead of dropping it.
	if stmt.Partbound != nil {
		node.Children = append(node.Children, s.statementMarker(cst.KindPartitionBound))
	}
	if stmt.OfTypename != nil {
		node.Children = append(node.Children, s.statementMarker(cst.KindTypedTable))
	}
	if len(stmt.InhRelations) > 0 {
		node.Children = append(node.Children, s.statementMarker(cst.KindInherits))
	}
	if len(stmt.Options) > 0 {
		node.Children = append(node.Children, s.statementMarker(cst.KindStorageParameters))
	}
	if stmt.Oncommit != pg_query.OnCommitAction_ONCOMMIT_NOOP {
		node.Children = append(node.Children, s.statementMarker(cst.KindOnCommit))
	}
	if stmt.Tablespacename != "" {
		node.Children = append(node.Children, s.statementMarker(cst.KindTablespace))
	}
	if stmt.AccessMethod != "" {
		node.Children = append(node.Children, s.statementMarker(cst.KindAccessMethod))
	}
	if len(stmt.Constraints) > 0 {
		node.Children = append(node.Children, s.statementMarker(cst.KindTableConstraint))
	}
	switch stmt.Relation.Relpersistence {
	case "t":
		node.Children = append(node.Children, s.statementMarker(cst.KindTemporary))
	case "u":
		node.Children = append(node.Children, s.statementMarker(cst.KindUnlogged))
	}

	return node, nil
}

// ifNotExists locates the IF ... EXISTS keywords preceding the table name
func (s *source) ifNotExists(nameOff int) (*cst.Node, error) {
	first, last := -1, -1
	for i, t := range s.tokens {
		if int(t.Start) >= nameOff {
			break
		}
		switch strings.ToUpper(s.sql[t.Start:t.End]) {
		case "IF":
			first = i
		case "EXISTS":
			last = i
		}
	}
	if first < 0 || last < 0 {
		return nil, fmt.Errorf("%w: IF NOT EXISTS tokens not found", ErrParse)
	}
	return &cst.Node{Kind: cst.KindIfNotExists, First: s.tok(first), Last: s.tok(last)}, nil
}

func (s *source) columnDefinition(col *pg_query.ColumnDef, end int) (*cst.Node, error) {
	nameIdent, err := s.identifier(int(col.Location))
	if err != nil {
		return nil, err
	}

	typeNode, err := s.dataType(col.TypeName)
	if err != nil {
		return nil, err
	}

	node := &cst.Node{
		Kind:     cst.KindColumnDefinition,
		Children: []*cst.Node{nameIdent, typeNode},
		First:    nameIdent.First,
		Last:     s.lastTokenBefore(end),
	}

	for _, c := range col.Constraints {
		con := c.GetConstraint()
		if con == nil {
			return nil, fmt.Errorf("%w: unsupported column constraint element", ErrUnsupported)
		}
		child, err := s.columnConstraint(con)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (s *source) columnConstraint(con *pg_query.Constraint) (*cst.Node, error) {
	i, err := s.tokenIndexAt(int(con.Location))
	if err != nil {
		return nil, err
	}

	// width is the constraint's token count in source: NOT NULL and
	// PRIMARY KEY are two keywords, the rest start with a single one.
	var kind cst.Kind
	width := 1
	switch con.Contype {
	case pg_query.ConstrType_CONSTR_NOTNULL:
		kind, width = cst.KindConstraintNotNull, 2
	case pg_query.ConstrType_CONSTR_PRIMARY:
		kind, width = cst.KindConstraintPrimaryKey, 2
	case pg_query.ConstrType_CONSTR_UNIQUE:
		kind = cst.KindConstraintUnique
	case pg_query.ConstrType_CONSTR_DEFAULT:
		kind = cst.KindConstraintDefault
	case pg_query.ConstrType_CONSTR_CHECK:
		kind = cst.KindConstraintCheck
	default:
		return nil, fmt.Errorf("%w: column constraint type %s", ErrUnsupported, con.Contype)
	}

	last := i + width - 1
	if last >= len(s.tokens) {
		last = len(s.tokens) - 1
	}
	return &cst.Node{Kind: kind, First: s.tok(i), Last: s.tok(last)}, nil
}

func (s *source) tableConstraint(con *pg_query.Constraint, end int) (*cst.Node, error) {
	i, err := s.tokenIndexAt(int(con.Location))
	if err != nil {
		return nil, err
	}
	return &cst.Node{Kind: cst.KindTableConstraint, First: s.tok(i), Last: s.lastTokenBefore(end)}, nil
}

func (s *source) dataType(tn *pg_query.TypeName) (*cst.Node, error) {
	if tn == nil || len(tn.Names) == 0 {
		return nil, fmt.Errorf("%w: column without a data type", ErrParse)
	}

	// The raw source token names the type; the builder resolves it against
	// the canonical table, so normalized names from the parse tree
	// (pg_catalog.int4 and friends) are deliberately ignored here.
	ident, err := s.identifier(int(tn.Location))
	if err != nil {
		return nil, err
	}
	base := &cst.Node{
		Kind:     cst.KindDataType,
		Children: []*cst.Node{ident},
		First:    ident.First,
		Last:     ident.Last,
	}
	if len(tn.Typmods) == 0 {
		return base, nil
	}

	// Parametrized form: wrap the base type, span through the closing paren.
	i, err := s.tokenIndexAt(int(tn.Location))
	if err != nil {
		return nil, err
	}
	closing := i
	for j := i + 1; j < len(s.tokens); j++ {
		if s.sql[s.tokens[j].Start:s.tokens[j].End] == ")" {
			closing = j
			break
		}
	}
	return &cst.Node{
		Kind:     cst.KindParametrizedDataType,
		Children: []*cst.Node{base},
		First:    base.First,
		Last:     s.tok(closing),
	}, nil
}

// identifier builds an identifier leaf from the token at a parse location.
// Quoting is detected from the source text: libpg_query folds unquoted
// identifiers before we ever see them, and the builder owns case-folding.
func (s *source) identifier(off int) (*cst.Node, error) {
	i, err := s.tokenIndexAt(off)
	if err != nil {
		return nil, err
	}

	tok := s.tok(i)
	kind := cst.KindIdentifier
	text := tok.Text
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) && len(text) >= 2 {
		kind = cst.KindQuotedIdentifier
		text = strings.ReplaceAll(text[1:len(text)-1], `""`, `"`)
	}
	return &cst.Node{Kind: kind, Text: text, First: tok, Last: tok}, nil
}

// elementBounds computes, per table element, the byte offset its span must
// not cross: the next element's start, or the paren closing the element list.
func (s *source) elementBounds(elts []*pg_query.Node) ([]int, error) {
	if len(elts) == 0 {
		return nil, nil
	}

	starts := make([]int, len(elts))
	for i, elt := range elts {
		switch {
		case elt.GetColumnDef() != nil:
			starts[i] = int(elt.GetColumnDef().Location)
		case elt.GetConstraint() != nil:
			starts[i] = int(elt.GetConstraint().Location)
		default:
			return nil, fmt.Errorf("%w: unsupported table element", ErrUnsupported)
		}
	}

	// Depth-track from the first element so parens inside elements (typmods,
	// CHECK expressions) and trailing parenthesized clauses are skipped; the
	// first unmatched ")" closes the element list.
	closing := 0
	depth := 0
scan:
	for _, t := range s.tokens {
		if int(t.Start) < starts[0] {
			continue
		}
		switch s.sql[t.Start:t.End] {
		case "(":
			depth++
		case ")":
			if depth == 0 {
				closing = int(t.Start)
				break scan
			}
			depth--
		}
	}

	bounds := make([]int, len(elts))
	for i := range elts {
		if i+1 < len(elts) {
			bounds[i] = starts[i+1]
		} else {
			bounds[i] = closing
		}
	}
	return bounds, nil
}
