package ui

import (
	"fmt"
	"strings"
)

// Diagnostic is a styled terminal message used for startup problems,
// before the renderer collaborator has taken over the display.
type Diagnostic struct {
	Title   string            // e.g. "Required collaborator missing"
	Details map[string]string // Key-value details to display
	Error   error             // Underlying error (failure diagnostics)
	Hints   []string          // Remediation hints
	Width   int               // Terminal width
}

// NewFailure creates a fatal-startup diagnostic box.
func NewFailure(title string, err error, hints []string) *Diagnostic {
	return &Diagnostic{
		Title: title,
		Error: err,
		Hints: hints,
		Width: GetTerminalWidth(),
	}
}

// NewWarning creates a degraded-mode diagnostic box.
func NewWarning(title string, details map[string]string) *Diagnostic {
	return &Diagnostic{
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// RenderFailure returns the styled failure box.
func (d *Diagnostic) RenderFailure() string {
	width := d.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, ErrorTitleStyle.Render(fmt.Sprintf("   %s  %s", FailureMarker, d.Title)))
	lines = append(lines, "")

	if d.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   "+d.Error.Error()))
		lines = append(lines, "")
	}

	for _, hint := range d.Hints {
		lines = append(lines, HintStyle.Render("   • "+hint))
	}
	if len(d.Hints) > 0 {
		lines = append(lines, "")
	}

	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderWarning returns the styled warning box.
func (d *Diagnostic) RenderWarning() string {
	width := d.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, WarningTitleStyle.Render(fmt.Sprintf("   %s  %s", WarningMarker, d.Title)))
	lines = append(lines, "")

	for key, value := range d.Details {
		keyStyled := DetailKeyStyle.Render(fmt.Sprintf("   %s:", key))
		lines = append(lines, keyStyled+" "+DetailValueStyle.Render(value))
	}
	if len(d.Details) > 0 {
		lines = append(lines, "")
	}

	return WarningBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// PrintFailure prints a styled failure box to stdout.
func PrintFailure(title string, err error, hints []string) {
	fmt.Println()
	fmt.Println(NewFailure(title, err, hints).RenderFailure())
}

// PrintWarning prints a styled warning box to stdout.
func PrintWarning(title string, details map[string]string) {
	fmt.Println()
	fmt.Println(NewWarning(title, details).RenderWarning())
}
