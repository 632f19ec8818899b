package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aalvaropc/s3lens/internal/domain"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatPretty, formatJSON, "":
		return nil
	default:
		return &domain.OpError{
			Op:   "cli.format",
			Kind: domain.KindInvalidRequest,
			Err:  fmt.Errorf("unsupported format %q (expected pretty|json)", format),
		}
	}
}

// outcomeReport is what fetch and inspect print.
type outcomeReport struct {
	Outcome   domain.Outcome
	Duration  time.Duration
	Extracted domain.Vars
	Extracts  []domain.ExtractResult
	Capture   string
}

type outcomeView struct {
	Kind        string                 `json:"kind"`
	RequestID   string                 `json:"request_id,omitempty"`
	Request     string                 `json:"request,omitempty"`
	Status      int                    `json:"status"`
	Outcome     string                 `json:"outcome"`
	Code        string                 `json:"code,omitempty"`
	Retryable   bool                   `json:"retryable,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Summary     string                 `json:"summary,omitempty"`
	ContentType string                 `json:"content_type,omitempty"`
	Truncated   bool                   `json:"truncated,omitempty"`
	LatencyMS   int64                  `json:"latency_ms"`
	Value       any                    `json:"value,omitempty"`
	Extracted   domain.Vars            `json:"extracted,omitempty"`
	Extracts    []domain.ExtractResult `json:"extracts,omitempty"`
	Capture     string                 `json:"capture,omitempty"`
}

func viewOf(r outcomeReport) outcomeView {
	o := r.Outcome
	v := outcomeView{
		Kind:        string(o.Kind),
		RequestID:   o.Request.ID,
		Request:     o.Request.String(),
		Status:      o.Status,
		Outcome:     string(o.Class),
		Summary:     o.Summary,
		ContentType: o.ContentType,
		Truncated:   o.Truncated,
		LatencyMS:   r.Duration.Milliseconds(),
		Extracted:   r.Extracted,
		Extracts:    r.Extracts,
		Capture:     r.Capture,
	}
	if o.Err != nil {
		v.Message = o.Err.Error()
	}
	if se := o.ServiceError; se != nil {
		v.Code = se.ErrorCode()
		v.Retryable = se.Code.IsRetryable()
	}
	// Data payloads are written with --out, not embedded.
	if _, isData := o.Value.([]byte); !isData {
		v.Value = o.Value
	}
	return v
}

func printOutcome(w io.Writer, r outcomeReport, format string) error {
	if format == formatJSON {
		return writeJSON(w, viewOf(r))
	}

	th := theme()
	o := r.Outcome

	head := string(o.Kind)
	if req := o.Request.String(); req != "" {
		head += "  " + req
	}
	fmt.Fprintln(w, th.Title.Render(head))

	status := "-"
	if o.Status != 0 {
		status = fmt.Sprintf("%d", o.Status)
	}
	fmt.Fprintf(w, "  status:  %s  %s\n", status, th.Faint.Render(r.Duration.Round(time.Millisecond).String()))

	if o.OK() {
		fmt.Fprintf(w, "  %s %s\n", th.Pass.Render("✓ "+string(o.Class)), o.Summary)
	} else {
		fmt.Fprintf(w, "  %s %s\n", th.Fail.Render("✗ "+string(o.Class)), o.Summary)
		if se := o.ServiceError; se != nil {
			printServiceError(w, se)
		} else if o.Err != nil {
			printIndented(w, "    ", o.Err.Error())
		}
	}
	if o.Truncated {
		fmt.Fprintf(w, "  %s\n", th.Warn.Render("! body truncated, raise s3lens.max_body_bytes to read it whole"))
	}
	if o.Request.ID != "" {
		fmt.Fprintf(w, "  %s\n", th.Faint.Render("request id: "+o.Request.ID))
	}

	printExtracts(w, "  ", r.Extracts, r.Extracted)
	if r.Capture != "" {
		fmt.Fprintf(w, "  capture: %s\n", r.Capture)
	}
	return nil
}

func printServiceError(w io.Writer, se *domain.ServiceError) {
	fmt.Fprintf(w, "    code:      %s (%s fault", se.ErrorCode(), faultName(se))
	if se.Code.IsRetryable() {
		fmt.Fprint(w, ", retryable")
	}
	fmt.Fprintln(w, ")")
	if se.Resource != "" {
		fmt.Fprintf(w, "    resource:  %s\n", se.Resource)
	}
	if se.RequestID != "" {
		fmt.Fprintf(w, "    requestId: %s\n", se.RequestID)
	}
	if se.HostID != "" {
		fmt.Fprintf(w, "    hostId:    %s\n", se.HostID)
	}
}

func faultName(se *domain.ServiceError) string {
	return se.ErrorFault().String()
}

func printExtracts(w io.Writer, indent string, results []domain.ExtractResult, vars domain.Vars) {
	if len(results) == 0 {
		return
	}
	th := theme()
	good, bad := countExtractPassFail(results)
	fmt.Fprintf(w, "%sextracts: %d ok / %d fail\n", indent, good, bad)
	for _, e := range results {
		mark := th.Pass.Render("✓")
		if !e.Success {
			mark = th.Fail.Render("✗")
		}
		fmt.Fprintf(w, "%s  %s %s: %s\n", indent, mark, e.Name, e.Message)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s  %s = %s\n", indent, k, vars[k])
	}
}

func printRun(w io.Writer, run domain.RunArtifact, format string) error {
	if format == formatJSON {
		return writeJSON(w, run)
	}
	printPrettyRun(w, run)
	return nil
}

func printPrettyRun(w io.Writer, run domain.RunArtifact) {
	th := theme()

	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "%s %s\n", th.Title.Render("Probes:"), run.ProbeSetName)
	if run.EnvironmentName != "" {
		fmt.Fprintf(w, "Env:      %s\n", run.EnvironmentName)
	}
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total.Round(time.Millisecond))
	if run.ID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", run.ID)
	}
	fmt.Fprintln(w)

	for _, r := range run.Results {
		mark := th.Pass.Render("OK")
		if r.Failed() {
			mark = th.Fail.Render("FAIL")
		}

		fmt.Fprintf(w, "- [%s] %s (%s %s) %dms\n", mark, r.Name, r.Method, r.Kind, r.LatencyMS)
		if r.Outcome != "" {
			line := fmt.Sprintf("  %d %s", r.StatusCode, r.Outcome)
			if r.Code != "" {
				line += " " + r.Code
			}
			if r.Summary != "" {
				line += ": " + r.Summary
			}
			fmt.Fprintln(w, line)
		}
		if n := len(r.Response.Body); n > 0 {
			size := humanize.Bytes(uint64(n))
			if r.Response.Truncated {
				size += " (truncated)"
			}
			fmt.Fprintf(w, "  %s\n", th.Faint.Render("body: "+size))
		}

		if len(r.Assertions) > 0 {
			pass, fail := countAssertionPassFail(r.Assertions)
			fmt.Fprintf(w, "  assertions: %d pass / %d fail\n", pass, fail)
			for _, a := range r.Assertions {
				m := th.Pass.Render("✓")
				if !a.Passed {
					m = th.Fail.Render("✗")
				}
				fmt.Fprintf(w, "    %s %s: %s\n", m, a.Name, a.Message)
			}
		}
		printExtracts(w, "  ", r.Extracts, r.Extracted)
		fmt.Fprintln(w)
	}

	fails := countFailures(run)
	summary := fmt.Sprintf("%d probes, %d failed", len(run.Results), fails)
	if fails > 0 {
		fmt.Fprintln(w, th.Fail.Render(summary))
	} else {
		fmt.Fprintln(w, th.Pass.Render(summary))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIndented(w io.Writer, indent, s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Fprintln(w, indent+line)
	}
}

func countFailures(run domain.RunArtifact) int {
	n := 0
	for _, r := range run.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

func countAssertionPassFail(in []domain.AssertionResult) (pass int, fail int) {
	for _, a := range in {
		if a.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}

func countExtractPassFail(in []domain.ExtractResult) (ok int, bad int) {
	for _, e := range in {
		if e.Success {
			ok++
		} else {
			bad++
		}
	}
	return ok, bad
}
