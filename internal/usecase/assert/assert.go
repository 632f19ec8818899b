package assert

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/usecase/extract"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// Observation is what a probe saw for one exchange.
type Observation struct {
	Status    int
	LatencyMS int64
	Class     domain.OutcomeClass
	// Code is the wire service error code, empty unless Class is service.
	Code string
	// Tree is the decoded body, nil when the body was absent or not XML.
	Tree *xmltree.Tree
}

func Status(expected int, got int) domain.AssertionResult {
	if got == expected {
		return pass("status", fmt.Sprintf("status %d", got))
	}
	return fail("status", fmt.Sprintf("expected status %d, got %d", expected, got))
}

func MaxLatency(maxMs int, latencyMs int64) domain.AssertionResult {
	if latencyMs <= int64(maxMs) {
		return pass("max_ms", fmt.Sprintf("latency %dms <= %dms", latencyMs, maxMs))
	}
	return fail("max_ms", fmt.Sprintf("expected latency <= %dms, got %dms", maxMs, latencyMs))
}

func Outcome(expected, got domain.OutcomeClass) domain.AssertionResult {
	if got == expected {
		return pass("outcome", fmt.Sprintf("outcome %s", got))
	}
	return fail("outcome", fmt.Sprintf("expected outcome %s, got %s", expected, got))
}

func Code(expected, got string) domain.AssertionResult {
	if got == expected {
		return pass("code", fmt.Sprintf("service error %s", got))
	}
	if got == "" {
		return fail("code", fmt.Sprintf("expected service error %s, got none", expected))
	}
	return fail("code", fmt.Sprintf("expected service error %s, got %s", expected, got))
}

// Evaluate applies the expectations to an observation. JSONPath checks run in sorted
// expression order.
func Evaluate(exp domain.Expectations, obs Observation) []domain.AssertionResult {
	var out []domain.AssertionResult

	if exp.Status != nil {
		out = append(out, Status(*exp.Status, obs.Status))
	}
	if exp.MaxLatencyMS != nil {
		out = append(out, MaxLatency(*exp.MaxLatencyMS, obs.LatencyMS))
	}

	switch {
	case exp.Outcome != "":
		out = append(out, Outcome(exp.Outcome, obs.Class))
	case exp.Code == "" && exp.Status == nil:
		out = append(out, Outcome(domain.OutcomeSuccess, obs.Class))
	}
	if exp.Code != "" {
		out = append(out, Code(exp.Code, obs.Code))
	}

	exprs := make([]string, 0, len(exp.JSONPath))
	for expr := range exp.JSONPath {
		exprs = append(exprs, expr)
	}
	sort.Strings(exprs)

	for _, expr := range exprs {
		var (
			val    any
			getErr error
		)
		if obs.Tree == nil {
			getErr = fmt.Errorf("response body is not XML")
		} else {
			val, getErr = obs.Tree.Query(expr)
		}
		out = append(out, jsonPathChecks(expr, exp.JSONPath[expr], val, getErr)...)
	}

	return out
}

// valueCheck decides one check against a query value already known to be present.
type valueCheck func(val any) (bool, string)

func jsonPathChecks(expr string, a domain.JSONPathAssertion, val any, getErr error) []domain.AssertionResult {
	var out []domain.AssertionResult
	if a.Exists {
		out = append(out, run("jsonpath.exists", expr, val, getErr, func(v any) (bool, string) {
			if extract.IsEmpty(v) {
				return false, "expected value to exist, got empty"
			}
			return true, "exists"
		}))
	}
	if a.Eq != nil {
		want := *a.Eq
		out = append(out, run("jsonpath.eq", expr, val, getErr, stringCheck(func(s string) (bool, string) {
			if s == want {
				return true, fmt.Sprintf("eq %q", want)
			}
			return false, fmt.Sprintf("expected %q, got %q", want, s)
		})))
	}
	if a.Contains != nil {
		sub := *a.Contains
		out = append(out, run("jsonpath.contains", expr, val, getErr, stringCheck(func(s string) (bool, string) {
			if strings.Contains(s, sub) {
				return true, fmt.Sprintf("contains %q", sub)
			}
			return false, fmt.Sprintf("%q does not contain %q", s, sub)
		})))
	}
	if a.Matches != nil {
		pattern := *a.Matches
		out = append(out, run("jsonpath.matches", expr, val, getErr, stringCheck(func(s string) (bool, string) {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false, fmt.Sprintf("invalid regex %q: %v", pattern, err)
			}
			if re.MatchString(s) {
				return true, fmt.Sprintf("matches %q", pattern)
			}
			return false, fmt.Sprintf("%q does not match %q", s, pattern)
		})))
	}
	if a.Gt != nil {
		threshold := *a.Gt
		out = append(out, run("jsonpath.gt", expr, val, getErr, numberCheck(func(f float64) (bool, string) {
			if f > threshold {
				return true, fmt.Sprintf("%v > %v", f, threshold)
			}
			return false, fmt.Sprintf("expected > %v, got %v", threshold, f)
		})))
	}
	if a.Lt != nil {
		threshold := *a.Lt
		out = append(out, run("jsonpath.lt", expr, val, getErr, numberCheck(func(f float64) (bool, string) {
			if f < threshold {
				return true, fmt.Sprintf("%v < %v", f, threshold)
			}
			return false, fmt.Sprintf("expected < %v, got %v", threshold, f)
		})))
	}
	return out
}

func run(name, expr string, val any, getErr error, check valueCheck) domain.AssertionResult {
	if getErr != nil {
		return fail(name, fmt.Sprintf("jsonpath %q: %v", expr, getErr))
	}
	ok, msg := check(val)
	if ok {
		return pass(name, fmt.Sprintf("jsonpath %q %s", expr, msg))
	}
	return fail(name, fmt.Sprintf("jsonpath %q: %s", expr, msg))
}

func stringCheck(f func(string) (bool, string)) valueCheck {
	return func(val any) (bool, string) {
		if val == nil {
			return false, "value is null"
		}
		s, err := extract.ToString(val)
		if err != nil {
			return false, err.Error()
		}
		return f(s)
	}
}

func numberCheck(f func(float64) (bool, string)) valueCheck {
	return stringCheck(func(s string) (bool, string) {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return false, fmt.Sprintf("value %q is not numeric", s)
		}
		return f(n)
	})
}

func pass(name, msg string) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: true, Message: msg}
}

func fail(name, msg string) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: false, Message: msg}
}
