package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clbanning/mxj/v2"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// Apply extracts variables from a decoded XML body using JSONPath rules over its map
// form. rules: map[varName]jsonPathExpr
//
// A nil tree (body absent or not XML) fails every rule. A failing rule is reported in
// its ExtractResult; the other rules still run.
func Apply(tree *xmltree.Tree, rules domain.ExtractSpec) (domain.Vars, []domain.ExtractResult) {
	if len(rules) == 0 {
		return domain.Vars{}, []domain.ExtractResult{}
	}

	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	extracted := domain.Vars{}
	results := make([]domain.ExtractResult, 0, len(keys))

	for _, name := range keys {
		expr := strings.TrimSpace(rules[name])
		s, err := value(tree, expr)
		if err != nil {
			results = append(results, domain.ExtractResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("extract %q (%s): %v", name, expr, err),
			})
			continue
		}

		extracted[name] = s
		results = append(results, domain.ExtractResult{
			Name:    name,
			Success: true,
			Message: fmt.Sprintf("extracted %q", name),
		})
	}

	return extracted, results
}

func value(tree *xmltree.Tree, expr string) (string, error) {
	if tree == nil {
		return "", fmt.Errorf("response body is not XML")
	}
	if expr == "" {
		return "", fmt.Errorf("empty jsonpath expression")
	}

	v, err := tree.Query(expr)
	if err != nil {
		return "", fmt.Errorf("jsonpath error: %w", err)
	}
	if IsEmpty(v) {
		return "", fmt.Errorf("no value found")
	}
	return ToString(v)
}

// IsEmpty reports whether a query result carries no value.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
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

// ToString flattens a query result. Single-element lists collapse to the element,
// lists of text join with commas and elements render as JSON.
func ToString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []any:
		if len(t) == 0 {
			return "", fmt.Errorf("empty array")
		}
		parts := make([]string, 0, len(t))
		for _, e := range t {
			s, err := ToString(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		b, err := mxj.Map(t).Json()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
