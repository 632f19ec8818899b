package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/smithy-go"
)

func TestLookupErrorCode(t *testing.T) {
	code, ok := LookupErrorCode("NoSuchBucket")
	if !ok || code != CodeNoSuchBucket {
		t.Fatalf("expected NoSuchBucket, got %s ok=%v", code, ok)
	}

	code, ok = LookupErrorCode("SomethingNew")
	if ok || code != CodeUnknown {
		t.Fatalf("expected unknown, got %s ok=%v", code, ok)
	}
}

func TestKnownErrorCodes_AllHaveStatus(t *testing.T) {
	codes := KnownErrorCodes()
	if len(codes) < 50 {
		t.Fatalf("expected a full code table, got %d entries", len(codes))
	}
	for _, c := range codes {
		if c.HTTPStatus() == 0 {
			t.Errorf("code %s has no status", c)
		}
		if c == CodeUnknown {
			t.Errorf("CodeUnknown must not be part of the table")
		}
	}
}

func TestErrorCodeClassification(t *testing.T) {
	if CodeNoSuchKey.HTTPStatus() != http.StatusNotFound {
		t.Fatalf("expected 404 for NoSuchKey")
	}
	if !CodeSlowDown.IsRetryable() || CodeAccessDenied.IsRetryable() {
		t.Fatalf("unexpected retryable classification")
	}
	if CodeInternalError.Fault() != smithy.FaultServer {
		t.Fatalf("expected server fault for InternalError")
	}
	if CodeAccessDenied.Fault() != smithy.FaultClient {
		t.Fatalf("expected client fault for AccessDenied")
	}
	if CodeUnknown.Fault() != smithy.FaultUnknown {
		t.Fatalf("expected unknown fault for CodeUnknown")
	}
}

func TestNewServiceError(t *testing.T) {
	se := NewServiceError("AccessDenied", "Denied")
	if se.Code != CodeAccessDenied || se.RawCode != "AccessDenied" || se.Message != "Denied" {
		t.Fatalf("unexpected service error %+v", se)
	}
	if se.Domain() != ErrorDomain {
		t.Fatalf("expected domain %s", ErrorDomain)
	}
	if want := "io.s3lens.response: service error AccessDenied: Denied"; se.Error() != want {
		t.Fatalf("unexpected message %q", se.Error())
	}

	unknown := NewServiceError("Weird", "")
	if unknown.Code != CodeUnknown || unknown.ErrorCode() != "Weird" {
		t.Fatalf("expected unknown variant keeping raw code, got %+v", unknown)
	}
}

func TestServiceError_SmithyAPIError(t *testing.T) {
	var err error = &ServiceError{Code: CodeNoSuchKey, RawCode: "NoSuchKey", Message: "gone", StatusCode: 404}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected smithy.APIError")
	}
	if apiErr.ErrorCode() != "NoSuchKey" || apiErr.ErrorMessage() != "gone" {
		t.Fatalf("unexpected api error fields: %s / %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	if apiErr.ErrorFault() != smithy.FaultClient {
		t.Fatalf("expected client fault")
	}

	server := &ServiceError{Code: CodeUnknown, RawCode: "Boom", StatusCode: 502}
	if server.ErrorFault() != smithy.FaultServer {
		t.Fatalf("expected status-derived server fault for unknown codes")
	}
}

func TestServiceError_Is(t *testing.T) {
	err := fmt.Errorf("listing: %w", NewServiceError("NoSuchBucket", "missing"))

	if !errors.Is(err, &ServiceError{Code: CodeNoSuchBucket}) {
		t.Fatalf("expected errors.Is to match by code")
	}
	if errors.Is(err, &ServiceError{Code: CodeAccessDenied}) {
		t.Fatalf("expected mismatch for other code")
	}
	if !IsServiceCode(err, CodeNoSuchBucket) {
		t.Fatalf("expected IsServiceCode to match")
	}

	unknown := NewServiceError("Weird", "")
	if !errors.Is(unknown, &ServiceError{Code: CodeUnknown}) {
		t.Fatalf("expected match on CodeUnknown without raw code")
	}
	if errors.Is(unknown, &ServiceError{Code: CodeUnknown, RawCode: "Other"}) {
		t.Fatalf("expected raw code mismatch")
	}
}
