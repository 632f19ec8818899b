package domain

import "errors"

// OutcomeClass is the coarse result of interpreting one exchange.
type OutcomeClass string

const (
	OutcomeSuccess       OutcomeClass = "success"
	OutcomeService       OutcomeClass = "service"
	OutcomeTransport     OutcomeClass = "transport"
	OutcomeSerialization OutcomeClass = "serialization"
)

// Classify maps the error returned by a serializer to an OutcomeClass.
// Errors that are none of the known kinds count as transport failures: they reached the
// serializer as the opaque transport error.
func Classify(err error) OutcomeClass {
	if err == nil {
		return OutcomeSuccess
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return OutcomeService
	}
	var ze *SerializationError
	if errors.As(err, &ze) {
		return OutcomeSerialization
	}
	return OutcomeTransport
}

// EndpointKind selects how an exchange is interpreted.
type EndpointKind string

const (
	KindListObjects    EndpointKind = "list-objects"
	KindListBuckets    EndpointKind = "list-buckets"
	KindBucketLocation EndpointKind = "bucket-location"
	KindDeleteObjects  EndpointKind = "delete-objects"
	KindCopyObject     EndpointKind = "copy-object"
	KindGetObject      EndpointKind = "get-object"
	KindHeadObject     EndpointKind = "head-object"
)

// EndpointKinds lists every kind in display order.
func EndpointKinds() []EndpointKind {
	return []EndpointKind{
		KindListObjects,
		KindListBuckets,
		KindBucketLocation,
		KindDeleteObjects,
		KindCopyObject,
		KindGetObject,
		KindHeadObject,
	}
}

// ParseEndpointKind validates a kind name.
func ParseEndpointKind(s string) (EndpointKind, bool) {
	for _, k := range EndpointKinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// DefaultMethod is the HTTP method the endpoint is normally called with.
func (k EndpointKind) DefaultMethod() HTTPMethod {
	switch k {
	case KindHeadObject:
		return MethodHead
	case KindDeleteObjects:
		return MethodPost
	case KindCopyObject:
		return MethodPut
	default:
		return MethodGet
	}
}

// ParseOutcomeClass validates an outcome class name.
func ParseOutcomeClass(s string) (OutcomeClass, bool) {
	switch c := OutcomeClass(s); c {
	case OutcomeSuccess, OutcomeService, OutcomeTransport, OutcomeSerialization:
		return c, true
	}
	return "", false
}

// Outcome is the interpreted result of one exchange.
type Outcome struct {
	Kind    EndpointKind
	Request RequestInfo
	Status  int
	Class   OutcomeClass

	// Value is the decoded object for success outcomes (a pointer to an objects type,
	// or []byte for data endpoints).
	Value any
	// Summary is a one-line description of Value.
	Summary string
	// ContentType is the detected type of data payloads.
	ContentType string
	// Truncated is set when the transport cut the body at its size limit. A success
	// Value is then built from a partial payload.
	Truncated bool

	Err          error
	ServiceError *ServiceError
}

// OK reports whether the exchange succeeded from the service's point of view.
func (o Outcome) OK() bool {
	return o.Class == OutcomeSuccess
}

// Complete reports whether the exchange succeeded and its body arrived whole.
func (o Outcome) Complete() bool {
	return o.OK() && !o.Truncated
}
