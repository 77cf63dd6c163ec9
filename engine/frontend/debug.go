package frontend

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v5"
	"google.golang.org/protobuf/encoding/protojson"
)

// DebugTree renders the raw libpg_query parse tree as JSON. Useful when a
// grammar/builder mismatch needs the untranslated parser output.
func DebugTree(sql string) (string, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true}.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
