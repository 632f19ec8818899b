// Package domain contains the core model for s3lens.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// HTTP clients, or the filesystem. Infra/adapters map into/from these types.
package domain
