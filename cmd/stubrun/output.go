package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/sbf-stubs/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// printer writes plain text to pipes and styled text to terminals.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(f *os.File) *printer {
	return &printer{w: f, styled: term.IsTerminal(int(f.Fd()))}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) exports(file string, imports []string, exports []engine.Export) {
	p.printf("%s %s\n\n", p.render(titleStyle, "Program"), file)
	p.printf("Imports:\n")
	for _, imp := range imports {
		p.printf("  %s\n", imp)
	}
	p.printf("\nExported functions:\n")
	for _, e := range exports {
		p.printf("  %s\n", signature(e, p.render))
	}
}

func (p *printer) outcome(name string, args []uint64, out outcome) {
	p.printf("\nCalling %s(%s)\n", p.render(funcStyle, name), joinArgs(args))
	for _, line := range out.Logs {
		p.printf("  %s\n", line)
	}
	if out.Err != nil {
		p.printf("%s\n", p.render(errorStyle, "Error: "+out.Err.Error()))
	} else {
		p.printf("%s\n", p.render(resultStyle, "Result: "+joinArgs(out.Results)))
	}
	if out.HasReturn {
		p.printf("Return data from %s: %s\n", out.ReturnData.ProgramID,
			base64.StdEncoding.EncodeToString(out.ReturnData.Data))
	}
	p.printf("Consumed %d compute units\n", out.Consumed)
}

func signature(e engine.Export, render func(lipgloss.Style, string) string) string {
	params := make([]string, e.Params)
	for i := range params {
		params[i] = fmt.Sprintf("arg%d: %s", i, render(typeStyle, "i64"))
	}
	result := ""
	if e.Results > 0 {
		result = " -> " + render(typeStyle, "i64")
	}
	return render(funcStyle, e.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

func joinArgs(vals []uint64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
