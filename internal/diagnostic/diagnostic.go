package diagnostic

import (
	"fmt"
	"sort"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single syntax error, binder problem or lint finding
type Diagnostic struct {
	Severity Severity
	Code     string // rule name for lint findings, empty otherwise
	Message  string
	Line     int
	Column   int
	File     string // script path relative to the workspace root
	Hint     string // optional suggestion
}

// String renders the diagnostic as `severity[file:line:col]: message`
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, d.Code)
	}
	return fmt.Sprintf("%s[%s:%d:%d]: %s", d.Severity, d.File, d.Line, d.Column, msg)
}

// Diagnostics manages a collection of diagnostic messages for one file
type Diagnostics struct {
	file  string
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// NewForFile creates a collection whose diagnostics are attributed to file
func NewForFile(file string) *Diagnostics {
	return &Diagnostics{
		file:  file,
		items: make([]Diagnostic, 0),
	}
}

// Add appends a diagnostic, filling in the collection's file when unset
func (d *Diagnostics) Add(item Diagnostic) {
	if item.File == "" {
		item.File = d.file
	}
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Lintf adds a warning tagged with the lint rule that produced it
func (d *Diagnostics) Lintf(code string, line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Warning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// ErrorWithHint adds an error diagnostic with an optional hint
func (d *Diagnostics) ErrorWithHint(line, col int, msg, hint string) {
	d.Add(Diagnostic{
		Severity: Error,
		Message:  msg,
		Line:     line,
		Column:   col,
		Hint:     hint,
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(Error)
}

// Warnings returns only the warning-level diagnostics
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(Warning)
}

func (d *Diagnostics) filter(s Severity) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == s {
			out = append(out, item)
		}
	}
	return out
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	return len(d.filter(Error))
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	return len(d.filter(Warning))
}

// Merge appends every diagnostic of other
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	for _, item := range other.items {
		d.Add(item)
	}
}

// Sort orders diagnostics by file, then position
func (d *Diagnostics) Sort() {
	sort.SliceStable(d.items, func(i, j int) bool {
		a, b := d.items[i], d.items[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Format returns human-readable messages
// Output format:
//
//	error[scripts/main.zs:3:10]: expected ;, got IDENT
//	  hint: did you forget a semicolon?
//	warning[scripts/main.zs:5:1]: unresolved name 'x' (unresolved-name)
func (d *Diagnostics) Format() string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		builder.WriteString(item.String())
		if item.Hint != "" {
			builder.WriteString(fmt.Sprintf("\n  hint: %s", item.Hint))
		}
		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = make([]Diagnostic, 0)
}
