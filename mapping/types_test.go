package mapping

import (
	"strings"
	"testing"

	"github.com/sqlfront-engine/sqlfront/engine/ast"
)

func TestResolveTypeKnownNames(t *testing.T) {
	cases := map[string]ast.TypeTag{
		"INT":      ast.TypeInteger,
		"INTEGER":  ast.TypeInteger,
		"BIGINT":   ast.TypeBigint,
		"SMALLINT": ast.TypeSmallint,
		"BOOLEAN":  ast.TypeBoolean,
		"BOOL":     ast.TypeBoolean,
		"VARCHAR":  ast.TypeVarchar,
		"TEXT":     ast.TypeText,
	}
	for name, want := range cases {
		got, ok := ResolveType(name)
		if !ok {
			t.Fatalf("ResolveType(%q) not found", name)
		}
		if got != want {
			t.Errorf("ResolveType(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestResolveTypeIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"int", "Integer", "varChar", "tExT"} {
		if _, ok := ResolveType(name); !ok {
			t.Errorf("ResolveType(%q) not found", name)
		}
	}
}

// The table is closed: names outside it do not resolve, REAL included.
func TestResolveTypeRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"REAL", "FLOAT", "DOUBLE", "DECIMAL", "UUID", ""} {
		if _, ok := ResolveType(name); ok {
			t.Errorf("ResolveType(%q) resolved, want miss", name)
		}
	}
}

func TestSuggestType(t *testing.T) {
	cases := map[string]string{
		"INTGER":  "INTEGER",
		"VACHAR":  "VARCHAR",
		"BOLEAN":  "BOOLEAN",
		"intger":  "INTEGER",
		"REAL":    "", // nothing close enough
		"UUID":    "",
		"ZZZZZZZ": "",
	}
	for unknown, want := range cases {
		if got := SuggestType(unknown); got != want {
			t.Errorf("SuggestType(%q) = %q, want %q", unknown, got, want)
		}
	}
}

func TestDialectType(t *testing.T) {
	got, ok := DialectType(ast.TypeVarchar, "MySQL")
	if !ok || got != "VARCHAR(255)" {
		t.Errorf("DialectType(Varchar, MySQL) = %q, %v", got, ok)
	}
	got, ok = DialectType(ast.TypeInteger, "PostgreSQL")
	if !ok || got != "INTEGER" {
		t.Errorf("DialectType(Integer, PostgreSQL) = %q, %v", got, ok)
	}
	if _, ok := DialectType(ast.TypeInteger, "Oracle"); ok {
		t.Error("DialectType should miss for an unknown dialect")
	}
}

// Every resolvable tag has a spelling in every dialect table.
func TestRenderTypeMapCoversTypeTable(t *testing.T) {
	for dialect, spellings := range RenderTypeMap {
		for name, tag := range TypeTable {
			spelled, ok := spellings[tag]
			if !ok {
				t.Errorf("dialect %s has no spelling for %s (%v)", dialect, name, tag)
				continue
			}
			if strings.TrimSpace(spelled) == "" {
				t.Errorf("dialect %s has a blank spelling for %v", dialect, tag)
			}
		}
	}
}
