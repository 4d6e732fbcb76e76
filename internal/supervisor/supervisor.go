package supervisor

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/okranz/vncpick/internal/configurator"
	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/history"
	"github.com/okranz/vncpick/internal/renderer"
	"github.com/okranz/vncpick/internal/scene"
)

// DefaultSplashDuration is how long the connecting splash stays on
// screen before the viewer takes over the display.
const DefaultSplashDuration = 2 * time.Second

// maxErrorLines bounds how many captured log lines fit on the error
// screen. The full capture stays in the log file.
const maxErrorLines = 6

// ScreenRenderer is the supervisor's view of the renderer session: the
// interactive Present round-trip plus fire-and-forget Show for transient
// screens.
type ScreenRenderer interface {
	renderer.Presenter
	Show(ctx context.Context, doc *scene.Document) error
}

// DiscoverFunc produces one candidate list. Discovery is best-effort, so
// the function returns no error; failures yield an empty slice.
type DiscoverFunc func(ctx context.Context) []discovery.Endpoint

// Config wires a Supervisor's collaborators together.
type Config struct {
	// Screens drives the renderer collaborator
	Screens ScreenRenderer

	// Launcher runs viewer sessions
	Launcher Launcher

	// History is the persisted most-recently-used store
	History *history.Store

	// DiscoverUSB and DiscoverMDNS feed the candidate lists. Either
	// may be nil, which simply means no candidates from that source.
	DiscoverUSB  DiscoverFunc
	DiscoverMDNS DiscoverFunc

	// SplashDuration overrides DefaultSplashDuration when positive
	SplashDuration time.Duration

	Logger *zap.Logger
}

// Supervisor owns the top-level loop: configure, remember, connect,
// supervise, report, repeat. It only ends when the user quits or an
// unrecoverable error (a renderer protocol violation) occurs.
type Supervisor struct {
	config Config
}

// New creates a Supervisor from the given wiring.
func New(config Config) *Supervisor {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.SplashDuration <= 0 {
		config.SplashDuration = DefaultSplashDuration
	}
	return &Supervisor{config: config}
}

// Run loops forever until the user quits (nil return) or a fatal error
// occurs. Each iteration re-runs discovery and re-reads history, so the
// configuration screen is always fresh.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		result, record, err := s.configure(ctx)
		if errors.Is(err, configurator.ErrQuit) {
			s.config.Logger.Info("user quit")
			return nil
		}
		if err != nil {
			return err
		}

		// Flush history before launching so a crash during the
		// session still remembers the choice.
		if err := s.config.History.Persist(history.Promote(record, result.Endpoint)); err != nil {
			s.config.Logger.Warn("failed to persist history", zap.Error(err))
		}

		s.showSplash(ctx, result.Endpoint)

		err = s.config.Launcher.Launch(ctx, result.Endpoint, result.Modes.ViewerFlags())
		var sessionErr *SessionError
		switch {
		case err == nil:
			// Session ended normally; back to configuration.
		case errors.As(err, &sessionErr):
			if ackErr := s.showSessionError(ctx, sessionErr); ackErr != nil {
				return ackErr
			}
		default:
			return err
		}
	}
}

// configure assembles a fresh form and runs the configuration loop.
// The loaded history record is returned alongside the result so the
// caller can promote into the same record it displayed.
func (s *Supervisor) configure(ctx context.Context) (configurator.Result, history.Record, error) {
	usb := s.discover(ctx, s.config.DiscoverUSB)
	mdns := s.discover(ctx, s.config.DiscoverMDNS)
	record := s.config.History.Load()

	controller := configurator.NewController(s.config.Screens, s.config.Logger)
	result, err := controller.Run(ctx, configurator.NewFormState(usb, mdns, record))
	return result, record, err
}

func (s *Supervisor) discover(ctx context.Context, fn DiscoverFunc) []discovery.Endpoint {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// showSplash renders the transient "connecting" screen. It dismisses
// itself via the scene timeout attribute; a splash failure is cosmetic
// and never blocks the session.
func (s *Supervisor) showSplash(ctx context.Context, endpoint discovery.Endpoint) {
	b := scene.NewBuilder()
	b.SetAttribute("timeout", strconv.Itoa(int(s.config.SplashDuration/time.Second)))
	b.SetAttribute("justify", "center")
	b.AddWidget(scene.WidgetLabel, 0, scene.CanvasHeight/2-40, scene.CanvasWidth, 80,
		"Connecting to "+endpoint.String())

	if err := s.config.Screens.Show(ctx, b.Document()); err != nil {
		s.config.Logger.Warn("connecting splash failed", zap.Error(err))
	}
}

// showSessionError renders the failed-session screen and blocks until
// the user acknowledges it.
func (s *Supervisor) showSessionError(ctx context.Context, sessionErr *SessionError) error {
	s.config.Logger.Warn("viewer session failed",
		zap.String("endpoint", sessionErr.Endpoint.String()),
		zap.Int("exit_code", sessionErr.ExitCode),
		zap.Int("log_lines", len(sessionErr.LogLines)),
	)

	lines := sessionErr.LogLines
	if len(lines) > maxErrorLines {
		lines = lines[len(lines)-maxErrorLines:]
	}

	b := scene.NewBuilder()
	b.SetAttribute("justify", "center")
	b.AddWidget(scene.WidgetLabel, 102, 200, 1200, 60,
		"Connection to "+sessionErr.Endpoint.String()+" failed")
	b.SetAttribute("justify", "left")
	y := 340
	for _, line := range lines {
		b.AddWidget(scene.WidgetLabel, 102, y, 1200, 50, line)
		y += 60
	}
	b.SetAttribute("justify", "center")
	b.AddNamedWidget(scene.WidgetButton, configurator.WidgetBack,
		(scene.CanvasWidth-300)/2, 1720, 300, 80, "Back")

	event, err := s.config.Screens.Present(ctx, b.Document())
	if err != nil {
		return err
	}
	if sel, ok := event.(renderer.Selected); !ok || sel.Widget != configurator.WidgetBack {
		return &renderer.ProtocolError{Reason: "unexpected event on error screen"}
	}
	return nil
}
