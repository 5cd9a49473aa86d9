// Package schema provides embedded JSON schemas for testlogs configuration
// files and generated reports.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
