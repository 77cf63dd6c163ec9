package ast

import "testing"

func TestParseErrorFormat(t *testing.T) {
	err := &ParseError{Message: "unsupported type name 'REAL'", Line: 3, Column: 12}
	want := "parse error at line 3, column 12: unsupported type name 'REAL'"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewParseErrorUsesSpanStart(t *testing.T) {
	span := SourceSpan{StartLine: 2, StartColumn: 5, EndLine: 4, EndColumn: 17}
	err := NewParseError(span, "invalid constraint cardinality")
	if err.Line != 2 || err.Column != 5 {
		t.Errorf("NewParseError position = (%d, %d), want (2, 5)", err.Line, err.Column)
	}
	if err.Message != "invalid constraint cardinality" {
		t.Errorf("NewParseError message = %q", err.Message)
	}
}
