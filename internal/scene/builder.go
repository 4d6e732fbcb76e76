package scene

import (
	"fmt"
	"strings"
)

// Canvas dimensions assumed by the renderer collaborator. The builder does
// not enforce them; widgets placed outside the canvas are the caller's
// responsibility.
const (
	CanvasWidth  = 1404
	CanvasHeight = 1872
)

// BaseFontSize is the canvas default applied by Reset.
const BaseFontSize = 32

// Widget kinds understood by the renderer collaborator.
const (
	WidgetLabel     = "label"
	WidgetParagraph = "paragraph"
	WidgetButton    = "button"
	WidgetTextInput = "textinput"
)

// Document is an immutable snapshot of one scene: the ordered directive
// lines sent to the renderer for a single round-trip.
type Document struct {
	lines []string
}

// Serialize returns the wire form of the document, one directive per line
// with a trailing newline.
func (d *Document) Serialize() string {
	return strings.Join(d.lines, "\n") + "\n"
}

// Len returns the number of directives in the document.
func (d *Document) Len() int {
	return len(d.lines)
}

// Lines returns a copy of the directive lines, mainly for tests and
// debug logging.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Builder accumulates scene directives. Building is purely additive and
// order-preserving: directives are emitted in call order, which determines
// render order and, for the renderer, z-order and tab order.
//
// A Builder is not safe for concurrent use, matching the strictly
// sequential render loop it feeds.
type Builder struct {
	lines []string
}

// NewBuilder returns a Builder initialized to the default canvas.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Reset()
	return b
}

// Reset clears the builder back to the default canvas with the base
// font size.
func (b *Builder) Reset() {
	b.lines = b.lines[:0]
	b.lines = append(b.lines, fmt.Sprintf("@fontsize %d", BaseFontSize))
}

// SetAttribute appends a global directive (for example "@justify center")
// affecting subsequently added widgets.
func (b *Builder) SetAttribute(name string, args ...string) {
	line := "@" + name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	b.lines = append(b.lines, line)
}

// AddWidget appends one positioned, unnamed widget directive. Unnamed
// widgets never report events; they are display-only.
func (b *Builder) AddWidget(kind string, x, y, w, h int, label string) {
	b.lines = append(b.lines, fmt.Sprintf("[%s %d %d %d %d %s]", kind, x, y, w, h, label))
}

// AddNamedWidget appends one positioned widget directive carrying an
// identifier. Events reported by the renderer reference this identifier.
func (b *Builder) AddNamedWidget(kind, id string, x, y, w, h int, label string) {
	b.lines = append(b.lines, fmt.Sprintf("[%s:%s %d %d %d %d %s]", kind, id, x, y, w, h, label))
}

// Document returns an immutable snapshot of the directives added so far.
// The builder can keep accumulating afterwards without affecting the
// snapshot.
func (b *Builder) Document() *Document {
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	return &Document{lines: lines}
}
