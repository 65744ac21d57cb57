package fileloader

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// parseJSON parses JSON data, applies the JSONPath expression and returns the
// resulting records with the header as the first record.
func parseJSON(data []byte, expression string) ([][]string, error) {
	if expression == "" {
		return nil, ErrJPathRequired
	}
	doc, err := parseJSONData(data)
	if err != nil {
		return nil, err
	}
	return ApplyJSONPath(doc, expression)
}

// parseJSONData parses a single JSON document, falling back to a stream of
// concatenated objects or arrays (JSON lines and similar). A stream is
// returned as an array of its values.
func parseJSONData(data []byte) (any, error) {
	data = trimBOM(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}

	values, streamErr := parseJSONStream(string(data))
	if streamErr == nil {
		switch len(values) {
		case 0:
			return nil, fmt.Errorf("data is empty")
		case 1:
			return values[0], nil
		default:
			return values, nil
		}
	}

	// Not a stream of containers; let the parser report the real problem
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc, nil
}

// parseJSONStream extracts consecutive top-level objects or arrays.
func parseJSONStream(str string) ([]any, error) {
	var values []any
	pos := 0

	for pos < len(str) {
		for pos < len(str) && (str[pos] == ' ' || str[pos] == '\t' || str[pos] == '\n' || str[pos] == '\r') {
			pos++
		}
		if pos >= len(str) {
			break
		}
		if str[pos] != '{' && str[pos] != '[' {
			return nil, fmt.Errorf("expected { or [ at position %d", pos)
		}

		end, err := findJSONValueEnd(str, pos)
		if err != nil {
			return nil, err
		}
		v, err := oj.ParseString(str[pos:end])
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON at position %d: %w", pos, err)
		}
		values = append(values, v)
		pos = end
	}
	return values, nil
}

// findJSONValueEnd returns the offset just past the object or array starting at pos.
func findJSONValueEnd(str string, pos int) (int, error) {
	depth := 0
	inString := false
	escaped := false

	for i := pos; i < len(str); i++ {
		ch := str[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return 0, fmt.Errorf("unmatched %c at position %d", ch, i)
			}
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("unclosed JSON value")
}

// ApplyJSONPath applies a JSONPath expression to parsed JSON. The expression
// must select an array of either:
//   - objects: the union of their keys, sorted, becomes the header
//   - arrays: the first array is the header
func ApplyJSONPath(doc any, expression string) ([][]string, error) {
	if expression == "" {
		return nil, ErrJPathRequired
	}

	x, err := jp.ParseString(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	results := x.Get(doc)
	if len(results) == 0 {
		return nil, fmt.Errorf("JSONPath expression returned no results")
	}

	arr, ok := results[0].([]any)
	if !ok {
		return nil, fmt.Errorf("JSONPath expression must return an array, got %T", results[0])
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("JSONPath expression returned empty array")
	}

	switch arr[0].(type) {
	case map[string]any:
		return objectsToRecords(arr), nil
	case []any:
		records := make([][]string, 0, len(arr))
		for _, item := range arr {
			inner, ok := item.([]any)
			if !ok {
				continue
			}
			rec := make([]string, len(inner))
			for i, v := range inner {
				rec[i] = valueToString(v)
			}
			records = append(records, rec)
		}
		return records, nil
	default:
		// Scalars become a single-column grid, one paragraph per element
		records := make([][]string, 0, len(arr)+1)
		records = append(records, []string{"value"})
		for _, v := range arr {
			records = append(records, []string{valueToString(v)})
		}
		return records, nil
	}
}

func objectsToRecords(arr []any) [][]string {
	keySet := make(map[string]struct{})
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			for k := range m {
				keySet[k] = struct{}{}
			}
		}
	}
	header := make([]string, 0, len(keySet))
	for k := range keySet {
		header = append(header, k)
	}
	sort.Strings(header)

	records := make([][]string, 0, len(arr)+1)
	records = append(records, header)
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := make([]string, len(header))
		for i, k := range header {
			rec[i] = valueToString(m[k])
		}
		records = append(records, rec)
	}
	return records
}

// valueToString renders a JSON value as a cell. Objects and arrays are
// re-encoded as compact JSON.
func valueToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		b, err := oj.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}
