package server

import (
	"io"

	"github.com/fatih/color"
)

var (
	labelColor = color.New(color.FgGreen, color.Bold)
	urlColor   = color.New(color.FgCyan, color.Underline)
	hintColor  = color.New(color.Faint)
)

// PrintBanner writes the startup lines: where files are served from and the
// URL to open.
func PrintBanner(w io.Writer, root, url string) {
	labelColor.Fprint(w, "Serving MADOLA web app from: ")
	io.WriteString(w, root+"\n")
	labelColor.Fprint(w, "Open your browser to: ")
	urlColor.Fprint(w, url)
	io.WriteString(w, "\n")
	hintColor.Fprintln(w, "Press Ctrl+C to stop the server")
}

// PrintStopped writes the notice shown after an interrupt.
func PrintStopped(w io.Writer) {
	io.WriteString(w, "\n")
	color.New(color.FgYellow).Fprintln(w, "Server stopped.")
}
