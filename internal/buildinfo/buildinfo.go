// Package buildinfo exposes version data injected at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/agentsynergy/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the version block to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}

// PrintBanner writes an ASCII-art title followed by the version block.
func PrintBanner(w io.Writer, title string) {
	fig := figure.NewFigure(title, "", true)
	fmt.Fprintln(w, fig.String())
	PrintBuildData(w)
}
