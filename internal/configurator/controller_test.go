package configurator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/renderer"
	"github.com/okranz/vncpick/internal/scene"
)

// scriptedPresenter replays a fixed sequence of events and records every
// document it was asked to render.
type scriptedPresenter struct {
	events []renderer.Event
	docs   []*scene.Document
}

func (p *scriptedPresenter) Present(_ context.Context, doc *scene.Document) (renderer.Event, error) {
	p.docs = append(p.docs, doc)
	if len(p.events) == 0 {
		return nil, errors.New("presenter script exhausted")
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev, nil
}

func endpoints(n int, base string) []discovery.Endpoint {
	eps := make([]discovery.Endpoint, n)
	for i := range eps {
		eps[i] = discovery.Endpoint{Host: fmt.Sprintf("%s.%d", base, i), Port: "5900"}
	}
	return eps
}

// countWidgets counts directives for named widgets with the given kind
// and identifier prefix.
func countWidgets(doc *scene.Document, kind, idPrefix string) int {
	count := 0
	for _, line := range doc.Lines() {
		if strings.HasPrefix(line, "["+kind+":"+idPrefix) {
			count++
		}
	}
	return count
}

func TestController_CandidateButtonsMatchLists(t *testing.T) {
	tests := []struct {
		name string
		usb  int
		mdns int
		hist int
	}{
		{name: "all lists populated", usb: 3, mdns: 2, hist: 5},
		{name: "single list", usb: 1},
		{name: "all empty", usb: 0, mdns: 0, hist: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewFormState(
				endpoints(tt.usb, "10.11.99"),
				endpoints(tt.mdns, "192.168.1"),
				endpoints(tt.hist, "172.16.0"),
			)
			presenter := &scriptedPresenter{events: []renderer.Event{renderer.Selected{Widget: WidgetQuit}}}
			controller := NewController(presenter, nil)

			if _, err := controller.Run(context.Background(), state); !errors.Is(err, ErrQuit) {
				t.Fatalf("Run() error = %v, want ErrQuit", err)
			}

			doc := presenter.docs[0]
			if got := countWidgets(doc, scene.WidgetButton, "usbsrv-"); got != tt.usb {
				t.Errorf("usb buttons = %d, want %d", got, tt.usb)
			}
			if got := countWidgets(doc, scene.WidgetButton, "mdnssrv-"); got != tt.mdns {
				t.Errorf("mdns buttons = %d, want %d", got, tt.mdns)
			}
			if got := countWidgets(doc, scene.WidgetButton, "histsrv-"); got != tt.hist {
				t.Errorf("history buttons = %d, want %d", got, tt.hist)
			}
		})
	}
}

func TestController_CandidateSelectionResolvesInOrder(t *testing.T) {
	usb := endpoints(3, "10.11.99")
	hist := endpoints(2, "172.16.0")
	state := NewFormState(usb, nil, hist)

	tests := []struct {
		widget string
		want   discovery.Endpoint
	}{
		{widget: "usbsrv-0", want: usb[0]},
		{widget: "usbsrv-2", want: usb[2]},
		{widget: "histsrv-1", want: hist[1]},
	}

	for _, tt := range tests {
		t.Run(tt.widget, func(t *testing.T) {
			presenter := &scriptedPresenter{events: []renderer.Event{renderer.Selected{Widget: tt.widget}}}
			result, err := NewController(presenter, nil).Run(context.Background(), state)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if result.Endpoint != tt.want {
				t.Errorf("Run() endpoint = %v, want %v", result.Endpoint, tt.want)
			}
		})
	}
}

func TestController_ManualEntryPassesRawStrings(t *testing.T) {
	presenter := &scriptedPresenter{events: []renderer.Event{
		renderer.TextChanged{Field: FieldHost, Value: "192.168.1.5"},
		renderer.TextChanged{Field: FieldPort, Value: "59oops"},
		renderer.Selected{Widget: WidgetManualConnect},
	}}

	result, err := NewController(presenter, nil).Run(context.Background(), NewFormState(nil, nil, nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Malformed ports are the viewer's problem, not ours.
	want := discovery.Endpoint{Host: "192.168.1.5", Port: "59oops"}
	if result.Endpoint != want {
		t.Errorf("Run() endpoint = %v, want %v", result.Endpoint, want)
	}
	if len(presenter.docs) != 3 {
		t.Errorf("renders = %d, want 3 (one per non-terminal event plus the initial)", len(presenter.docs))
	}
}

func TestController_TextEditsAppearInNextRender(t *testing.T) {
	presenter := &scriptedPresenter{events: []renderer.Event{
		renderer.TextChanged{Field: FieldHost, Value: "10.0.0.9"},
		renderer.Selected{Widget: WidgetQuit},
	}}

	if _, err := NewController(presenter, nil).Run(context.Background(), NewFormState(nil, nil, nil)); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v, want ErrQuit", err)
	}

	second := presenter.docs[1].Serialize()
	if !strings.Contains(second, "[textinput:host 102 ") || !strings.Contains(second, " 10.0.0.9]") {
		t.Errorf("second render does not carry the edited host:\n%s", second)
	}
}

func TestController_ToggleRoundTrip(t *testing.T) {
	// Three toggles of the same kind land back on the starting value.
	presenter := &scriptedPresenter{events: []renderer.Event{
		renderer.Selected{Widget: TogglePen},
		renderer.Selected{Widget: TogglePen},
		renderer.Selected{Widget: TogglePen},
		renderer.Selected{Widget: WidgetManualConnect},
	}}

	result, err := NewController(presenter, nil).Run(context.Background(), NewFormState(nil, nil, nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Modes.Pen {
		t.Error("Modes.Pen = true after odd number of toggles, want false")
	}
	if !result.Modes.Buttons || !result.Modes.Touch {
		t.Errorf("unrelated modes changed: %+v", result.Modes)
	}
}

func TestController_ToggleLabelsTrackState(t *testing.T) {
	presenter := &scriptedPresenter{events: []renderer.Event{
		renderer.Selected{Widget: ToggleTouch},
		renderer.Selected{Widget: WidgetQuit},
	}}

	if _, err := NewController(presenter, nil).Run(context.Background(), NewFormState(nil, nil, nil)); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v, want ErrQuit", err)
	}

	first := presenter.docs[0].Serialize()
	second := presenter.docs[1].Serialize()
	if !strings.Contains(first, "Touch: on]") {
		t.Errorf("initial render should show Touch: on:\n%s", first)
	}
	if !strings.Contains(second, "Touch: off]") {
		t.Errorf("render after toggle should show Touch: off:\n%s", second)
	}
}

func TestController_ProtocolViolations(t *testing.T) {
	state := NewFormState(endpoints(2, "10.11.99"), nil, nil)

	tests := []struct {
		name  string
		event renderer.Event
	}{
		{name: "unknown widget", event: renderer.Selected{Widget: "mystery"}},
		{name: "candidate index out of range", event: renderer.Selected{Widget: "usbsrv-2"}},
		{name: "candidate index for empty list", event: renderer.Selected{Widget: "histsrv-0"}},
		{name: "unknown text field", event: renderer.TextChanged{Field: "nickname", Value: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presenter := &scriptedPresenter{events: []renderer.Event{tt.event}}
			_, err := NewController(presenter, nil).Run(context.Background(), state)

			var protoErr *renderer.ProtocolError
			if !errors.As(err, &protoErr) {
				t.Errorf("Run() error = %v, want *renderer.ProtocolError", err)
			}
		})
	}
}

func TestInputModes_ViewerFlags(t *testing.T) {
	tests := []struct {
		name  string
		modes InputModes
		want  []string
	}{
		{name: "all enabled", modes: DefaultInputModes(), want: nil},
		{name: "pen disabled", modes: InputModes{Buttons: true, Pen: false, Touch: true}, want: []string{"--no-pen"}},
		{
			name:  "all disabled",
			modes: InputModes{},
			want:  []string{"--no-buttons", "--no-pen", "--no-touch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.modes.ViewerFlags()
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("ViewerFlags() = %v, want %v", got, tt.want)
			}
		})
	}
}
