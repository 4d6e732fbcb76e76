package scene

import (
	"strings"
	"testing"
)

func TestBuilder_DefaultCanvas(t *testing.T) {
	b := NewBuilder()

	doc := b.Document()
	if doc.Len() != 1 {
		t.Fatalf("Document().Len() = %d, want 1", doc.Len())
	}
	if got := doc.Lines()[0]; got != "@fontsize 32" {
		t.Errorf("base directive = %q, want \"@fontsize 32\"", got)
	}
}

func TestBuilder_DirectiveOrder(t *testing.T) {
	b := NewBuilder()
	b.SetAttribute("justify", "center")
	b.AddWidget(WidgetLabel, 0, 100, CanvasWidth, 50, "Pick a server")
	b.SetAttribute("justify", "left")
	b.AddNamedWidget(WidgetButton, "quit", 602, 1700, 200, 80, "Quit")

	want := []string{
		"@fontsize 32",
		"@justify center",
		"[label 0 100 1404 50 Pick a server]",
		"@justify left",
		"[button:quit 602 1700 200 80 Quit]",
	}

	got := b.Document().Lines()
	if len(got) != len(want) {
		t.Fatalf("directives = %d, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("directive[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuilder_Reset(t *testing.T) {
	b := NewBuilder()
	b.AddWidget(WidgetLabel, 0, 0, 10, 10, "old")
	b.Reset()

	doc := b.Document()
	if doc.Len() != 1 {
		t.Errorf("Len() after Reset = %d, want 1", doc.Len())
	}
}

func TestBuilder_NoCoordinateValidation(t *testing.T) {
	// Out-of-canvas coordinates are accepted; bounds are the caller's
	// responsibility.
	b := NewBuilder()
	b.AddWidget(WidgetLabel, -50, CanvasHeight+100, 99999, 0, "offscreen")

	got := b.Document().Lines()[1]
	want := "[label -50 1972 99999 0 offscreen]"
	if got != want {
		t.Errorf("directive = %q, want %q", got, want)
	}
}

func TestDocument_SnapshotIsImmutable(t *testing.T) {
	b := NewBuilder()
	doc := b.Document()
	b.AddWidget(WidgetLabel, 0, 0, 1, 1, "later")

	if doc.Len() != 1 {
		t.Errorf("snapshot grew with builder: Len() = %d, want 1", doc.Len())
	}
}

func TestDocument_Serialize(t *testing.T) {
	b := NewBuilder()
	b.AddNamedWidget(WidgetTextInput, "host", 100, 200, 300, 60, "10.11.99.1")

	got := b.Document().Serialize()
	want := "@fontsize 32\n[textinput:host 100 200 300 60 10.11.99.1]\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}
