package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single checker error or warning
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Diagnostics manages a collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{}
}

// Errorf adds an error diagnostic with a formatted message
func (d *Diagnostics) Errorf(format string, args ...any) {
	d.items = append(d.items, Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warningf adds a warning diagnostic with a formatted message
func (d *Diagnostics) Warningf(format string, args ...any) {
	d.items = append(d.items, Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
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
	count := 0
	for _, item := range d.items {
		if item.Severity == Error {
			count++
		}
	}
	return count
}

// Strings returns the bare diagnostic messages, errors first order preserved
func (d *Diagnostics) Strings() []string {
	out := make([]string, len(d.items))
	for i, item := range d.items {
		out[i] = item.Message
	}
	return out
}

// Format returns human-readable messages, one per line:
//
//	error: cannot concatenate string and int
func (d *Diagnostics) Format() string {
	if len(d.items) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, item := range d.items {
		sb.WriteString(fmt.Sprintf("%s: %s", item.Severity, item.Message))
		if i < len(d.items)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = nil
}
