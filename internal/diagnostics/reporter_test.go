package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Noratrieb/go-minimize/internal/tree"
)

func TestFormatErrorWithPosition(t *testing.T) {
	source := `package main

func main() {
	undefined()
}
`
	reporter := NewReporter("main.go", source)

	err := ToolError{
		Level:    Error,
		Code:     "E-ORACLE",
		Message:  "oracle transport failure",
		Position: tree.Position{Line: 4, Column: 2},
		Length:   9,
		Notes:    []string{"the subprocess exited before writing a header"},
		HelpText: "check --subcommand points at an installed tool",
	}
	formatted := reporter.Format(err)

	assert.Contains(t, formatted, "error[E-ORACLE]: oracle transport failure")
	assert.Contains(t, formatted, "main.go:4:2")
	assert.Contains(t, formatted, "undefined()")
	assert.Contains(t, formatted, "note:")
	assert.Contains(t, formatted, "help:")
}

func TestFormatErrorWithoutPosition(t *testing.T) {
	reporter := NewReporter("config.yaml", "")

	err := ToolError{Level: Error, Message: "no tracked files remain"}
	formatted := reporter.Format(err)

	assert.Contains(t, formatted, "error: no tracked files remain")
	assert.NotContains(t, formatted, "-->")
}

func TestFormatWarningLevel(t *testing.T) {
	reporter := NewReporter("main.go", "x := 1\n")
	err := ToolError{Level: Warning, Message: "unused candidate skipped"}
	formatted := reporter.Format(err)
	assert.Contains(t, formatted, "warning: unused candidate skipped")
}

func TestMarkerSpacingAndLength(t *testing.T) {
	reporter := NewReporter("main.go", "let variable = value;\n")
	marker := reporter.marker(5, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets)
}

func TestLineNumberWidthHasMinimum(t *testing.T) {
	reporter := NewReporter("main.go", "")
	assert.Equal(t, 3, reporter.lineNumberWidth(7))
	assert.Equal(t, 4, reporter.lineNumberWidth(1234))
}
