package renderer

import (
	"fmt"
	"strings"
)

// Event line prefixes emitted by the renderer collaborator.
const (
	inputPrefix    = "input: "
	selectedPrefix = "selected: "
)

// inputSeparator splits a field identifier from its value in an input
// event line ("input: host : 10.11.99.1").
const inputSeparator = " : "

// Event is one user action reported by the renderer. Exactly one Event is
// produced per round-trip. The concrete types are TextChanged and
// Selected.
type Event interface {
	event()
}

// TextChanged reports that the user edited a text input widget.
type TextChanged struct {
	// Field is the identifier of the edited widget
	Field string
	// Value is the full new content of the field
	Value string
}

func (TextChanged) event() {}

// Selected reports that the user activated a named widget.
type Selected struct {
	// Widget is the identifier of the activated widget
	Widget string
}

func (Selected) event() {}

// ProtocolError reports a renderer output line that does not match the
// event grammar. It is fatal to the current configuration loop and is
// never retried.
type ProtocolError struct {
	// Line is the offending renderer output line
	Line string
	// Reason describes the violation
	Reason string
	// Err is the underlying error, if any
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("renderer protocol violation: %s (line %q): %v", e.Reason, e.Line, e.Err)
	}
	return fmt.Sprintf("renderer protocol violation: %s (line %q)", e.Reason, e.Line)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ParseEvent parses exactly one renderer output line into an Event.
//
// Grammar:
//
//	input: <fieldId> : <value>    -> TextChanged
//	selected: <widgetId>          -> Selected
//
// Any other line is a *ProtocolError.
func ParseEvent(line string) (Event, error) {
	line = strings.TrimRight(line, "\r\n")

	switch {
	case strings.HasPrefix(line, inputPrefix):
		rest := strings.TrimPrefix(line, inputPrefix)
		parts := strings.SplitN(rest, inputSeparator, 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, &ProtocolError{Line: line, Reason: "malformed input event"}
		}
		return TextChanged{Field: parts[0], Value: parts[1]}, nil

	case strings.HasPrefix(line, selectedPrefix):
		widget := strings.TrimPrefix(line, selectedPrefix)
		if widget == "" {
			return nil, &ProtocolError{Line: line, Reason: "selected event without widget id"}
		}
		return Selected{Widget: widget}, nil

	default:
		return nil, &ProtocolError{Line: line, Reason: "unrecognized event line"}
	}
}
