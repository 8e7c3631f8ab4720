// Package domain contains the core model for the nataly plugin.
//
// The domain is transport- and persistence-agnostic: it does not depend on process
// execution, YAML parsing, or the filesystem. Infra/adapters map into/from these types.
package domain
