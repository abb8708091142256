// Package diagnostics formats fatal tool errors (bad flags, a workspace
// that cannot be snapshotted, an oracle transport failure) the way the
// CLI should surface them to a terminal: a colored header plus a
// source-line excerpt when a position is available.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/Noratrieb/go-minimize/internal/tree"
)

// Level represents the severity of a reported problem.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
	Help    Level = "help"
)

// ToolError is a structured fatal error with optional source context.
// Position is the zero value when the error has no associated source
// location (e.g. a config error).
type ToolError struct {
	Level    Level
	Code     string // e.g. "E-ORACLE"
	Message  string
	Position tree.Position
	Length   int
	Notes    []string
	HelpText string
}

// Reporter formats ToolErrors against one file's source text.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a Reporter for the given file and its source text.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders a ToolError in the style of a compiler diagnostic.
func (r *Reporter) Format(err ToolError) string {
	var out strings.Builder

	levelColor := r.levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	if err.Position.Line == 0 {
		out.WriteString("\n")
		return out.String()
	}

	width := r.lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&out, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))

	if err.Position.Line > 1 && err.Position.Line-1 < len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, err.Position.Line-1)), dim("│"), r.lines[err.Position.Line-2])
	}

	if err.Position.Line <= len(r.lines) && err.Position.Line > 0 {
		fmt.Fprintf(&out, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), r.lines[err.Position.Line-1])
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), r.marker(err.Position.Column, err.Length, err.Level))
	}

	if err.Position.Line < len(r.lines) {
		fmt.Fprintf(&out, "%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, err.Position.Line+1)), dim("│"), r.lines[err.Position.Line])
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note)
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", maxInt(0, column-1))

	var markerColor func(...interface{}) string
	switch level {
	case Warning:
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		markerColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	return spaces + markerColor(strings.Repeat("^", length))
}

func (r *Reporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
