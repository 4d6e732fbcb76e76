package supervisor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okranz/vncpick/internal/configurator"
	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/history"
	"github.com/okranz/vncpick/internal/renderer"
	"github.com/okranz/vncpick/internal/scene"
)

// fakeScreens replays scripted events for Present calls and records
// every document rendered either way.
type fakeScreens struct {
	events    []renderer.Event
	presented []*scene.Document
	shown     []*scene.Document
}

func (f *fakeScreens) Present(_ context.Context, doc *scene.Document) (renderer.Event, error) {
	f.presented = append(f.presented, doc)
	if len(f.events) == 0 {
		return nil, errors.New("screen script exhausted")
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeScreens) Show(_ context.Context, doc *scene.Document) error {
	f.shown = append(f.shown, doc)
	return nil
}

type launchCall struct {
	endpoint discovery.Endpoint
	flags    []string
}

// fakeLauncher records launches and returns the scripted errors in
// order (nil-padded once exhausted).
type fakeLauncher struct {
	results []error
	calls   []launchCall
}

func (f *fakeLauncher) Launch(_ context.Context, endpoint discovery.Endpoint, flags []string) error {
	f.calls = append(f.calls, launchCall{endpoint: endpoint, flags: flags})
	if len(f.results) == 0 {
		return nil
	}
	err := f.results[0]
	f.results = f.results[1:]
	return err
}

func newTestSupervisor(t *testing.T, screens *fakeScreens, launcher *fakeLauncher) (*Supervisor, string) {
	t.Helper()
	historyPath := filepath.Join(t.TempDir(), "history")
	return New(Config{
		Screens:  screens,
		Launcher: launcher,
		History:  history.NewStore(historyPath, nil),
	}), historyPath
}

func TestSupervisor_QuitLeavesHistoryUntouched(t *testing.T) {
	screens := &fakeScreens{events: []renderer.Event{
		renderer.Selected{Widget: configurator.WidgetQuit},
	}}
	launcher := &fakeLauncher{}
	sup, historyPath := newTestSupervisor(t, screens, launcher)

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil on user quit", err)
	}

	if len(launcher.calls) != 0 {
		t.Errorf("viewer launched %d times, want 0", len(launcher.calls))
	}
	if _, err := os.Stat(historyPath); !os.IsNotExist(err) {
		t.Error("history file was created on a quit-only run")
	}
}

func TestSupervisor_ManualEntrySession(t *testing.T) {
	// Empty history and discovery; the user types an address, disables
	// pen input, connects, and quits after the session ends cleanly.
	screens := &fakeScreens{events: []renderer.Event{
		renderer.TextChanged{Field: configurator.FieldHost, Value: "192.168.1.5"},
		renderer.TextChanged{Field: configurator.FieldPort, Value: "5900"},
		renderer.Selected{Widget: configurator.TogglePen},
		renderer.Selected{Widget: configurator.WidgetManualConnect},
		renderer.Selected{Widget: configurator.WidgetQuit},
	}}
	launcher := &fakeLauncher{}
	sup, historyPath := newTestSupervisor(t, screens, launcher)

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(launcher.calls) != 1 {
		t.Fatalf("viewer launched %d times, want 1", len(launcher.calls))
	}
	call := launcher.calls[0]
	want := discovery.Endpoint{Host: "192.168.1.5", Port: "5900"}
	if call.endpoint != want {
		t.Errorf("launched endpoint = %v, want %v", call.endpoint, want)
	}
	if strings.Join(call.flags, " ") != "--no-pen" {
		t.Errorf("viewer flags = %v, want [--no-pen]", call.flags)
	}

	data, err := os.ReadFile(historyPath)
	if err != nil {
		t.Fatalf("history not persisted: %v", err)
	}
	if string(data) != "192.168.1.5 5900\n" {
		t.Errorf("history = %q, want \"192.168.1.5 5900\\n\"", data)
	}

	if len(screens.shown) != 1 {
		t.Fatalf("splash shown %d times, want 1", len(screens.shown))
	}
	splash := screens.shown[0].Serialize()
	if !strings.Contains(splash, "Connecting to 192.168.1.5:5900") {
		t.Errorf("splash missing endpoint:\n%s", splash)
	}
	if !strings.Contains(splash, "@timeout ") {
		t.Errorf("splash is not auto-dismissing:\n%s", splash)
	}
}

func TestSupervisor_HistoryPersistedBeforeLaunch(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")
	screens := &fakeScreens{events: []renderer.Event{
		renderer.TextChanged{Field: configurator.FieldHost, Value: "10.0.0.1"},
		renderer.TextChanged{Field: configurator.FieldPort, Value: "5901"},
		renderer.Selected{Widget: configurator.WidgetManualConnect},
		renderer.Selected{Widget: configurator.WidgetQuit},
	}}

	// The launcher observes the history file at launch time.
	var atLaunch []byte
	launcher := &checkingLauncher{check: func() {
		atLaunch, _ = os.ReadFile(historyPath)
	}}

	sup := New(Config{
		Screens:  screens,
		Launcher: launcher,
		History:  history.NewStore(historyPath, nil),
	})

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if string(atLaunch) != "10.0.0.1 5901\n" {
		t.Errorf("history at launch time = %q, want it flushed before the session", atLaunch)
	}
}

type checkingLauncher struct {
	check func()
}

func (c *checkingLauncher) Launch(context.Context, discovery.Endpoint, []string) error {
	c.check()
	return nil
}

func TestSupervisor_FailedSessionShowsErrorScreen(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(historyPath, []byte("10.11.99.1 5900\n"), 0600); err != nil {
		t.Fatal(err)
	}

	screens := &fakeScreens{events: []renderer.Event{
		renderer.Selected{Widget: "histsrv-0"},
		renderer.Selected{Widget: configurator.WidgetBack},
		renderer.Selected{Widget: configurator.WidgetQuit},
	}}
	launcher := &fakeLauncher{results: []error{&SessionError{
		Endpoint: discovery.Endpoint{Host: "10.11.99.1", Port: "5900"},
		ExitCode: 1,
		LogLines: []string{"unable to connect to host", "connection refused (111)"},
	}}}

	sup := New(Config{
		Screens:  screens,
		Launcher: launcher,
		History:  history.NewStore(historyPath, nil),
	})

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Render order: config, error screen, config again.
	if len(screens.presented) != 3 {
		t.Fatalf("presented %d screens, want 3", len(screens.presented))
	}
	errorScreen := screens.presented[1].Serialize()
	for _, line := range []string{"unable to connect to host", "connection refused (111)"} {
		if !strings.Contains(errorScreen, line) {
			t.Errorf("error screen missing log line %q:\n%s", line, errorScreen)
		}
	}
	if !strings.Contains(errorScreen, "[button:back ") {
		t.Errorf("error screen has no Back control:\n%s", errorScreen)
	}

	finalScreen := screens.presented[2].Serialize()
	if !strings.Contains(finalScreen, "[button:quit ") {
		t.Errorf("acknowledging the error did not return to configuration:\n%s", finalScreen)
	}
}

func TestSupervisor_ErrorScreenTruncatesLongLogs(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "log line " + strings.Repeat("x", i+1)
	}

	screens := &fakeScreens{events: []renderer.Event{
		renderer.TextChanged{Field: configurator.FieldHost, Value: "h"},
		renderer.Selected{Widget: configurator.WidgetManualConnect},
		renderer.Selected{Widget: configurator.WidgetBack},
		renderer.Selected{Widget: configurator.WidgetQuit},
	}}
	launcher := &fakeLauncher{results: []error{&SessionError{
		Endpoint: discovery.Endpoint{Host: "h"},
		ExitCode: 2,
		LogLines: lines,
	}}}
	sup, _ := newTestSupervisor(t, screens, launcher)

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Render order: form, form after the host edit, error screen, form.
	errorScreen := screens.presented[2].Serialize()
	if strings.Contains(errorScreen, lines[0]+"]") {
		t.Error("oldest log line should have been truncated away")
	}
	if !strings.Contains(errorScreen, lines[9]) {
		t.Error("newest log line missing from error screen")
	}
}

func TestSupervisor_ProtocolViolationIsFatal(t *testing.T) {
	screens := &fakeScreens{events: []renderer.Event{
		renderer.Selected{Widget: "not-a-widget"},
	}}
	sup, _ := newTestSupervisor(t, screens, &fakeLauncher{})

	err := sup.Run(context.Background())
	var protoErr *renderer.ProtocolError
	if !errors.As(err, &protoErr) {
		t.Errorf("Run() error = %v, want *renderer.ProtocolError", err)
	}
}

func TestSupervisor_DiscoveryFeedsCandidates(t *testing.T) {
	screens := &fakeScreens{events: []renderer.Event{
		renderer.Selected{Widget: "usbsrv-0"},
		renderer.Selected{Widget: configurator.WidgetQuit},
	}}
	launcher := &fakeLauncher{}
	historyPath := filepath.Join(t.TempDir(), "history")

	sup := New(Config{
		Screens:  screens,
		Launcher: launcher,
		History:  history.NewStore(historyPath, nil),
		DiscoverUSB: func(context.Context) []discovery.Endpoint {
			return []discovery.Endpoint{{Host: "10.11.99.1", Port: "5900"}}
		},
		DiscoverMDNS: func(context.Context) []discovery.Endpoint {
			return []discovery.Endpoint{{Host: "192.168.1.7", Port: "5901"}}
		},
	})

	if err := sup.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	first := screens.presented[0].Serialize()
	if !strings.Contains(first, "[button:usbsrv-0 ") || !strings.Contains(first, "10.11.99.1:5900") {
		t.Errorf("usb candidate missing from form:\n%s", first)
	}
	if !strings.Contains(first, "[button:mdnssrv-0 ") || !strings.Contains(first, "192.168.1.7:5901") {
		t.Errorf("mdns candidate missing from form:\n%s", first)
	}
	if len(launcher.calls) != 1 || launcher.calls[0].endpoint.Host != "10.11.99.1" {
		t.Errorf("launch calls = %+v, want one launch of 10.11.99.1", launcher.calls)
	}
}

func TestCheckCollaborators(t *testing.T) {
	checks := CheckCollaborators("no-such-renderer-bin", "no-such-viewer-bin", "no-such-scanner-bin")

	if len(checks) != 3 {
		t.Fatalf("len(checks) = %d, want 3", len(checks))
	}
	missing := MissingRequired(checks)
	if len(missing) != 2 {
		t.Fatalf("MissingRequired() = %d entries, want 2 (renderer and viewer)", len(missing))
	}
	for _, c := range missing {
		if c.Name == "scanner" {
			t.Error("scanner reported as required")
		}
	}
}
