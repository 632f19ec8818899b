package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/infra/capturestore"
	"github.com/aalvaropc/s3lens/internal/infra/httprunner"
	"github.com/aalvaropc/s3lens/internal/infra/logger"
	"github.com/aalvaropc/s3lens/internal/usecase"
	ucextract "github.com/aalvaropc/s3lens/internal/usecase/extract"
)

type exchangeFlags struct {
	kind     string
	extracts []string
	format   string
}

func (f *exchangeFlags) register(c *cobra.Command, kindRequired bool) {
	c.Flags().StringVarP(&f.kind, "kind", "k", "", "endpoint kind (see `s3lens kinds`)")
	c.Flags().StringArrayVarP(&f.extracts, "extract", "x", nil, "extract rule name=jsonpath (repeatable)")
	c.Flags().StringVar(&f.format, "format", formatPretty, "output format: pretty|json")
	if kindRequired {
		_ = c.MarkFlagRequired("kind")
	}
}

func fetchCmd(a *app) *cobra.Command {
	var ef exchangeFlags
	var method string
	var headers []string
	var query []string
	var body string
	var outFile string
	var save bool

	c := &cobra.Command{
		Use:   "fetch <url-or-/bucket/key>",
		Short: "Send one request and interpret the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(ef.format); err != nil {
				return err
			}
			kind, err := parseKind(ef.kind)
			if err != nil {
				return err
			}
			rules, err := parseExtracts(ef.extracts)
			if err != nil {
				return err
			}
			hdrs, err := parseKV("header", headers)
			if err != nil {
				return err
			}
			q, err := parseKV("query", query)
			if err != nil {
				return err
			}

			done, err := a.open()
			defer done()
			if err != nil {
				return err
			}

			spec := domain.RequestSpec{
				Name:    "fetch",
				Kind:    kind,
				Method:  kind.DefaultMethod(),
				Target:  args[0],
				Query:   q,
				Headers: hdrs,
				Body:    body,
			}
			if strings.TrimSpace(method) != "" {
				spec.Method = domain.HTTPMethod(strings.ToUpper(strings.TrimSpace(method)))
			}

			runner := httprunner.NewFromConfig(a.cfg.Transport)
			ex, err := runner.Run(cmd.Context(), spec)
			if err != nil {
				return err
			}

			report, err := interpret(kind, ex, rules)
			if err != nil {
				return err
			}

			if save {
				store := capturestore.NewJSONStore(a.root, a.cfg)
				path, serr := store.SaveCapture(domain.NewCapture(kind, ex, time.Now()))
				if serr != nil {
					return serr
				}
				report.Capture = path
			}

			// A partial payload is never written to --out.
			if outFile != "" && ex.Body != nil && !ex.Truncated {
				if werr := os.WriteFile(outFile, ex.Body, 0o644); werr != nil {
					return &domain.OpError{Op: "cli.fetch.out", Kind: domain.KindExecution, Path: outFile, Err: werr}
				}
			}

			if err := printOutcome(out(cmd), report, ef.format); err != nil {
				return err
			}
			return outcomeErr(report.Outcome)
		},
	}

	ef.register(c, true)
	c.Flags().StringVarP(&method, "method", "X", "", "HTTP method (defaults by kind)")
	c.Flags().StringArrayVarP(&headers, "header", "H", nil, "request header k=v (repeatable)")
	c.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter k=v (repeatable)")
	c.Flags().StringVar(&body, "body", "", "request body")
	c.Flags().StringVarP(&outFile, "out", "o", "", "write the response body to this file")
	c.Flags().BoolVar(&save, "save", false, "save the exchange under captures/")
	return c
}

// interpret runs the serializer for kind, applies extract rules and logs the exchange.
func interpret(kind domain.EndpointKind, ex domain.Exchange, rules domain.ExtractSpec) (outcomeReport, error) {
	interp, err := usecase.Interpret(kind, ex)
	if err != nil {
		return outcomeReport{}, err
	}
	o := interp.Outcome

	code := ""
	if o.ServiceError != nil {
		code = o.ServiceError.ErrorCode()
	}
	logger.L().Info("exchange.done",
		"kind", string(kind),
		"request_id", ex.Request.ID,
		"status", o.Status,
		"outcome", string(o.Class),
		"code", code,
		"latency_ms", ex.Duration.Milliseconds(),
	)

	report := outcomeReport{Outcome: o, Duration: ex.Duration}
	if len(rules) > 0 {
		report.Extracted, report.Extracts = ucextract.Apply(interp.Tree, rules)
	}
	return report, nil
}

// outcomeErr makes the exit status reflect the outcome. The report was already printed.
// A truncated body fails even when the service answered with success.
func outcomeErr(o domain.Outcome) error {
	if o.Complete() {
		return nil
	}
	return &outcomeError{class: o.Class, summary: o.Summary, truncated: o.Truncated}
}

type outcomeError struct {
	class     domain.OutcomeClass
	summary   string
	truncated bool
}

func (e *outcomeError) Error() string {
	if e.class == domain.OutcomeSuccess && e.truncated {
		return "incomplete response: " + e.summary
	}
	return fmt.Sprintf("%s failure: %s", e.class, e.summary)
}

func parseKind(s string) (domain.EndpointKind, error) {
	k, ok := domain.ParseEndpointKind(strings.TrimSpace(s))
	if !ok {
		return "", &domain.OpError{
			Op:   "cli.kind",
			Kind: domain.KindInvalidRequest,
			Err:  fmt.Errorf("unknown kind %q (see `s3lens kinds`)", s),
		}
	}
	return k, nil
}

func parseExtracts(in []string) (domain.ExtractSpec, error) {
	kv, err := parseKV("extract", in)
	if err != nil {
		return nil, err
	}
	return domain.ExtractSpec(kv), nil
}

// parseKV parses repeated k=v flags. Only the first '=' splits.
func parseKV(flag string, in []string) (map[string]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(in))
	for _, s := range in {
		k, v, found := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !found || k == "" {
			return nil, &domain.OpError{
				Op:   "cli." + flag,
				Kind: domain.KindInvalidRequest,
				Err:  fmt.Errorf("--%s expects k=v, got %q", flag, s),
			}
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
