// Package templates ships the generated-application payload. The files
// under app/ are data copied into the target directory, never compiled
// or executed by this tool.
package templates

import "embed"

// FS exposes the embedded template tree rooted at app/.
//
//go:embed all:app
var FS embed.FS
