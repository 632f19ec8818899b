package cli

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/s3lens/internal/domain"
)

var (
	reLine       = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)
	reMissingVar = regexp.MustCompile(`(?i)missing variable\s*:?\s*"?([A-Za-z0-9_.-]+)"?`)
)

// userMessage turns an error into one line for the terminal. Details stay in the log.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oc *outcomeError
	if errors.As(err, &oc) {
		return err.Error()
	}

	var se *domain.ServiceError
	if errors.As(err, &se) {
		msg := "Service error " + se.ErrorCode()
		if se.Message != "" {
			msg += ": " + se.Message
		}
		return msg
	}

	var te *domain.TransportError
	if errors.As(err, &te) {
		return "Transport error (" + string(te.Kind) + "): " + errString(te.Err)
	}

	var ze *domain.SerializationError
	if errors.As(err, &ze) {
		return "Could not interpret response: " + firstLine(ze.Error())
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.Contains(oe.Op, "yamlprobes"):
				return "Probe file not found: " + oe.Path
			case strings.Contains(oe.Op, "capture"):
				return "Capture not found: " + oe.Path
			case strings.Contains(oe.Op, "yamlenv"):
				return "Environment not found: " + oe.Path
			case strings.Contains(oe.Op, "workspacefinder.findroot"):
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if oe.Err != nil {
				return "Invalid config in " + base + ": " + oe.Err.Error()
			}
			return "Invalid config"

		case domain.KindInvalidRequest:
			if v := extractMissingVarName(err.Error()); v != "" {
				return "Missing variable " + v
			}
			return "Invalid request: " + errString(oe.Err)

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}
	if v := extractMissingVarName(err.Error()); v != "" {
		return "Missing variable " + v
	}
	if strings.HasPrefix(err.Error(), "run failed") {
		return err.Error()
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func extractMissingVarName(s string) string {
	m := reMissingVar.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func errString(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
