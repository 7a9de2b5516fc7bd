// Package domain contains the core model for linepatch: line sequences,
// line edits, patch plans and the error taxonomy.
//
// The domain does not touch the filesystem or parse YAML. Infra adapters map
// into/from these types.
package domain
