package domain

import (
	"fmt"
)

// SerializationKind classifies failures of the serialization pipeline itself.
type SerializationKind string

const (
	// SerializationFailed: the body could not be decoded or did not fit the target type.
	SerializationFailed SerializationKind = "data_serialization_failed"
	// SerializationNoData: the exchange carried no body.
	SerializationNoData SerializationKind = "no_data"
	// SerializationNoResponse: the exchange carried no response.
	SerializationNoResponse SerializationKind = "no_response"
)

// SerializationError means the pipeline could not process the exchange. It signals a
// mismatch between the expected type and the payload, never a service-reported failure.
type SerializationError struct {
	Kind    SerializationKind
	Reason  string
	Request string // Optional: request descriptor for diagnostics
	Err     error
}

// Sentinels for errors.Is checks on the kind alone.
var (
	ErrNoData     = &SerializationError{Kind: SerializationNoData}
	ErrNoResponse = &SerializationError{Kind: SerializationNoResponse}
	ErrDataFailed = &SerializationError{Kind: SerializationFailed}
)

// NewDataSerializationFailed builds a SerializationFailed error with reason.
func NewDataSerializationFailed(reason string, cause error) *SerializationError {
	return &SerializationError{Kind: SerializationFailed, Reason: reason, Err: cause}
}

func (e *SerializationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", ErrorDomain, e.Kind)
	if e.Request != "" {
		base += fmt.Sprintf(" (request=%s)", e.Request)
	}
	if e.Reason != "" {
		base += ": " + e.Reason
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *SerializationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Domain returns ErrorDomain.
func (e *SerializationError) Domain() string { return ErrorDomain }

// Is matches another *SerializationError of the same kind.
func (e *SerializationError) Is(target error) bool {
	t, ok := target.(*SerializationError)
	return ok && t != nil && t.Kind == e.Kind
}

// WithRequest returns a copy annotated with the request descriptor.
func (e *SerializationError) WithRequest(req string) *SerializationError {
	cp := *e
	cp.Request = req
	return &cp
}
