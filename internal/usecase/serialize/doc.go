// Package serialize turns completed exchanges into typed results.
//
// Every stage takes the same inputs (request descriptor, response, body bytes and the
// optional transport error) and returns exactly one of a value, a *domain.ServiceError,
// a *domain.SerializationError or the transport error, following a fixed precedence.
// Stages are pure and safe for concurrent use.
package serialize
