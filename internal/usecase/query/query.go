package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/kodkafa/nataly/internal/domain"
)

// Select evaluates a JSONPath expression against the JSON form of a chart
// summary and returns the matched value as a string. Non-scalar matches are
// re-encoded as JSON.
func Select(summary domain.ChartSummary, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("empty jsonpath expression"),
		}
	}

	b, err := json.Marshal(summary)
	if err != nil {
		return "", &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
		}
	}
	if isEmptyValue(val) {
		return "", &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("jsonpath %q: no value found", expr),
		}
	}

	return toString(val)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// Common case: jsonpath returns a slice with 1 element
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
