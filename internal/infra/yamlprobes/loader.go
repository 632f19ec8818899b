package yamlprobes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ProbeLoader = (*Loader)(nil)

func (l *Loader) LoadProbes(path string) (domain.ProbeSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ProbeSet{}, &domain.OpError{
			Op:   "yamlprobes.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yf yamlFile
	if err := yaml.Unmarshal(b, &yf); err != nil {
		return domain.ProbeSet{}, &domain.OpError{
			Op:   "yamlprobes.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, yf)
}

type yamlFile struct {
	Name   string      `yaml:"name"`
	Probes []yamlProbe `yaml:"probes"`
}

type yamlProbe struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	Method  string            `yaml:"method"`
	Target  string            `yaml:"target"`
	Query   map[string]string `yaml:"query"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`

	Expect  yamlExpect        `yaml:"expect"`
	Extract map[string]string `yaml:"extract"`
}

type yamlExpect struct {
	Status  *int   `yaml:"status"`
	MaxMS   *int   `yaml:"max_ms"`
	Outcome string `yaml:"outcome"`
	Code    string `yaml:"code"`

	JSONPath map[string]yamlJSONPathAssertion `yaml:"jsonpath"`
}

type yamlJSONPathAssertion struct {
	Exists   bool     `yaml:"exists"`
	Eq       *string  `yaml:"eq"`
	Contains *string  `yaml:"contains"`
	Matches  *string  `yaml:"matches"`
	Gt       *float64 `yaml:"gt"`
	Lt       *float64 `yaml:"lt"`
}

func mapAndValidate(path string, yf yamlFile) (domain.ProbeSet, error) {
	name := strings.TrimSpace(yf.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(yf.Probes) == 0 {
		return domain.ProbeSet{}, invalidField(path, "probes", "at least one probe is required")
	}

	set := domain.ProbeSet{
		Name:   name,
		Probes: make([]domain.Probe, 0, len(yf.Probes)),
	}

	for i, p := range yf.Probes {
		prefix := fmt.Sprintf("probes[%d]", i)

		if strings.TrimSpace(p.Name) == "" {
			return domain.ProbeSet{}, invalidField(path, prefix+".name", "probe name is required")
		}
		if strings.TrimSpace(p.Target) == "" {
			return domain.ProbeSet{}, invalidField(path, prefix+".target", "probe target is required")
		}

		kind, ok := domain.ParseEndpointKind(strings.TrimSpace(p.Kind))
		if !ok {
			return domain.ProbeSet{}, invalidField(path, prefix+".kind", fmt.Sprintf("unknown kind %q", p.Kind))
		}

		method := kind.DefaultMethod()
		if strings.TrimSpace(p.Method) != "" {
			m, err := parseMethod(p.Method)
			if err != nil {
				return domain.ProbeSet{}, invalidField(path, prefix+".method", err.Error())
			}
			method = m
		}

		var outcome domain.OutcomeClass
		if strings.TrimSpace(p.Expect.Outcome) != "" {
			outcome, ok = domain.ParseOutcomeClass(strings.TrimSpace(p.Expect.Outcome))
			if !ok {
				return domain.ProbeSet{}, invalidField(path, prefix+".expect.outcome", fmt.Sprintf("unknown outcome %q", p.Expect.Outcome))
			}
		}

		probe := domain.Probe{
			Request: domain.RequestSpec{
				Name:    p.Name,
				Kind:    kind,
				Method:  method,
				Target:  strings.TrimSpace(p.Target),
				Query:   p.Query,
				Headers: p.Headers,
				Body:    p.Body,
			},
			Expect: domain.Expectations{
				Status:       p.Expect.Status,
				MaxLatencyMS: p.Expect.MaxMS,
				Outcome:      outcome,
				Code:         strings.TrimSpace(p.Expect.Code),
				JSONPath:     mapJSONPath(p.Expect.JSONPath),
			},
			Extract: domain.ExtractSpec(p.Extract),
		}
		if probe.Request.Headers == nil {
			probe.Request.Headers = map[string]string{}
		}
		if probe.Extract == nil {
			probe.Extract = domain.ExtractSpec{}
		}

		set.Probes = append(set.Probes, probe)
	}

	return set, nil
}

func mapJSONPath(in map[string]yamlJSONPathAssertion) map[string]domain.JSONPathAssertion {
	out := make(map[string]domain.JSONPathAssertion, len(in))
	for k, v := range in {
		out[k] = domain.JSONPathAssertion{
			Exists:   v.Exists,
			Eq:       v.Eq,
			Contains: v.Contains,
			Matches:  v.Matches,
			Gt:       v.Gt,
			Lt:       v.Lt,
		}
	}
	return out
}

func parseMethod(m string) (domain.HTTPMethod, error) {
	up := strings.ToUpper(strings.TrimSpace(m))
	switch domain.HTTPMethod(up) {
	case domain.MethodGet,
		domain.MethodHead,
		domain.MethodPut,
		domain.MethodPost,
		domain.MethodDelete:
		return domain.HTTPMethod(up), nil
	default:
		return "", fmt.Errorf("unsupported method %q", m)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlprobes.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
