package domain

import "time"

// HTTPMethod represents an HTTP method (e.g., GET, HEAD).
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodHead   HTTPMethod = "HEAD"
	MethodPut    HTTPMethod = "PUT"
	MethodPost   HTTPMethod = "POST"
	MethodDelete HTTPMethod = "DELETE"
)

// Vars holds values extracted from responses.
type Vars map[string]string

// Environment is a named set of variables that seeds probe placeholders.
type Environment struct {
	Name string
	Vars Vars
}

// RequestSpec describes a single request to an S3-style endpoint.
type RequestSpec struct {
	Name   string
	Kind   EndpointKind
	Method HTTPMethod
	// Target is either an absolute URL or a /bucket/key path resolved against the
	// configured endpoint.
	Target  string
	Query   map[string]string
	Headers map[string]string
	Body    string
}

// JSONPathAssertion defines checks against one JSONPath over the decoded XML tree.
// XML text is always a string; Gt and Lt parse it as a number.
type JSONPathAssertion struct {
	Exists   bool
	Eq       *string
	Contains *string
	Matches  *string
	Gt       *float64
	Lt       *float64
}

// Expectations describe what a probe expects from its exchange.
//
// With no Status, Outcome or Code set, the probe expects a success outcome. Code is
// compared against the wire code, so codes outside the known table can be asserted too.
type Expectations struct {
	Status       *int
	MaxLatencyMS *int
	Outcome      OutcomeClass
	Code         string
	JSONPath     map[string]JSONPathAssertion
}

// ExtractSpec maps a variable name to a JSONPath over the decoded XML tree.
type ExtractSpec map[string]string

// Probe is one request plus its expectations.
type Probe struct {
	Request RequestSpec
	Expect  Expectations
	Extract ExtractSpec
}

// ProbeSet groups probes loaded from one file.
type ProbeSet struct {
	Name   string
	Probes []Probe
}

// AssertionResult is the output of a single assertion.
type AssertionResult struct {
	Name    string
	Passed  bool
	Message string
}

// ExtractResult is the output of a single extract rule.
type ExtractResult struct {
	Name    string
	Success bool
	Message string
}

// ResponseSnapshot stores a bounded view of the response.
type ResponseSnapshot struct {
	Headers   map[string][]string
	Body      []byte
	Truncated bool
}

// ProbeResult is the result of running one probe.
type ProbeResult struct {
	Name   string
	Kind   EndpointKind
	Method HTTPMethod
	URL    string

	StatusCode int
	LatencyMS  int64

	Outcome OutcomeClass
	Code    string
	Message string
	Summary string

	Assertions []AssertionResult
	Extracts   []ExtractResult
	Extracted  Vars

	Response ResponseSnapshot
}

// Failed reports whether any assertion or extract rule failed.
func (r ProbeResult) Failed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return true
		}
	}
	for _, e := range r.Extracts {
		if !e.Success {
			return true
		}
	}
	return false
}

// RunArtifact represents a persisted probe run.
type RunArtifact struct {
	ID string

	ProbeSetName    string
	ProbeSetPath    string
	EnvironmentName string

	StartedAt time.Time
	EndedAt   time.Time

	Results []ProbeResult
}
