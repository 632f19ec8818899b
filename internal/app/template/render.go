// Package template expands {{name}} placeholders in probe requests with variables
// extracted by earlier probes.
package template

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/s3lens/internal/domain"
)

const opRender = "template.render"

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an invalid_request error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars domain.Vars) (string, error) {
	if !strings.Contains(input, "{{") {
		return input, nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", renderErr(fmt.Errorf("unclosed template expression in %q", input))
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", renderErr(fmt.Errorf("empty template expression in %q", input))
		}

		value, ok := vars[key]
		if !ok {
			return "", renderErr(fmt.Errorf("missing variable %q", key))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// RenderRequest expands every templated field of spec: target, query values, header
// values and body. Keys are left untouched.
func RenderRequest(spec domain.RequestSpec, vars domain.Vars) (domain.RequestSpec, error) {
	out := spec

	var err error
	if out.Target, err = RenderString(spec.Target, vars); err != nil {
		return spec, err
	}
	if out.Body, err = RenderString(spec.Body, vars); err != nil {
		return spec, err
	}
	if out.Query, err = renderMap(spec.Query, vars); err != nil {
		return spec, err
	}
	if out.Headers, err = renderMap(spec.Headers, vars); err != nil {
		return spec, err
	}
	return out, nil
}

func renderMap(in map[string]string, vars domain.Vars) (map[string]string, error) {
	if in == nil {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		r, err := RenderString(v, vars)
		if err != nil {
			return nil, err
		}
		out[k] = r
	}
	return out, nil
}

func renderErr(err error) error {
	return &domain.OpError{Op: opRender, Kind: domain.KindInvalidRequest, Err: err}
}
