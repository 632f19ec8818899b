package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want OutcomeClass
	}{
		{"nil", nil, OutcomeSuccess},
		{"service", NewServiceError("AccessDenied", ""), OutcomeService},
		{"wrapped service", fmt.Errorf("x: %w", NewServiceError("SlowDown", "")), OutcomeService},
		{"serialization", ErrNoData, OutcomeSerialization},
		{"transport", &TransportError{Kind: TransportTimeout, Err: errors.New("t")}, OutcomeTransport},
		{"opaque", errors.New("reset"), OutcomeTransport},
	}
	for _, c := range cases {
		if got := Classify(c.err); got != c.want {
			t.Errorf("%s: Classify=%s, want %s", c.name, got, c.want)
		}
	}
}

func TestParseEndpointKind(t *testing.T) {
	for _, k := range EndpointKinds() {
		got, ok := ParseEndpointKind(string(k))
		if !ok || got != k {
			t.Fatalf("expected %s to parse", k)
		}
	}
	if _, ok := ParseEndpointKind("put-object"); ok {
		t.Fatalf("expected unknown kind to fail")
	}
}

func TestSerializationError_IsByKind(t *testing.T) {
	err := NewDataSerializationFailed("bad", errors.New("eof")).WithRequest("GET /b")
	if !errors.Is(err, ErrDataFailed) {
		t.Fatalf("expected match on kind")
	}
	if errors.Is(err, ErrNoData) {
		t.Fatalf("expected kind mismatch")
	}
	if want := "io.s3lens.response: data_serialization_failed (request=GET /b): bad: eof"; err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEndpointKind_DefaultMethod(t *testing.T) {
	cases := map[EndpointKind]HTTPMethod{
		KindListObjects:   MethodGet,
		KindHeadObject:    MethodHead,
		KindDeleteObjects: MethodPost,
		KindCopyObject:    MethodPut,
		KindGetObject:     MethodGet,
	}
	for k, want := range cases {
		if got := k.DefaultMethod(); got != want {
			t.Errorf("%s: expected %s, got %s", k, want, got)
		}
	}
}

func TestParseOutcomeClass(t *testing.T) {
	if c, ok := ParseOutcomeClass("service"); !ok || c != OutcomeService {
		t.Fatalf("expected service class")
	}
	if _, ok := ParseOutcomeClass("failed"); ok {
		t.Fatalf("expected unknown class to fail")
	}
}
