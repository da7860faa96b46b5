// Package buildinfo exposes version metadata injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/docflow/internal/buildinfo.Version=v1.0.0 \
//	  -X github.com/dmitrijs2005/docflow/internal/buildinfo.Date=2026-10-01 \
//	  -X github.com/dmitrijs2005/docflow/internal/buildinfo.Commit=abc123" ./cmd/docflow
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
