// Package migrations bundles the booking service schema.
package migrations

import _ "embed"

// Schema creates the booking service tables if they do not exist
//
//go:embed 001_init.sql
var Schema string
