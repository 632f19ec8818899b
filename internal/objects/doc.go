// Package objects holds the typed results of S3-style endpoints.
//
// Body-based types implement FromResponse and header-based types implement FromHeaders,
// which is what the serialize stages require of their type parameter. Each constructor
// declines (returns false) when the payload does not have its expected shape.
package objects
