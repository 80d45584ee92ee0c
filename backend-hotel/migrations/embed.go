// Package migrations bundles the hotel service schema.
package migrations

import _ "embed"

// Schema creates the hotel service tables if they do not exist
//
//go:embed 001_init.sql
var Schema string
