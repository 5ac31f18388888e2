package cli

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Query is a parsed jq expression applied to decoded messages.
type Query struct {
	Expr  string
	query *gojq.Query
}

// ParseQuery parses a jq expression. The expression is parsed once so
// errors surface before any input is read.
func ParseQuery(expr string) (*Query, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}
	return &Query{Expr: expr, query: q}, nil
}

// Run applies the query to input and returns every emitted value. The input
// is normalized through JSON first since gojq only accepts JSON-shaped
// values (no sized integers or byte slices).
func (q *Query) Run(input any) ([]any, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("jq input: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("jq input: %w", err)
	}

	var out []any
	iter := q.query.Run(v)
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := r.(error); ok {
			return nil, fmt.Errorf("jq error: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}
