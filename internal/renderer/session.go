package renderer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/okranz/vncpick/internal/scene"
)

// Presenter is the narrow interface the configuration loop renders
// through. *Session is the production implementation; tests substitute
// fakes.
type Presenter interface {
	Present(ctx context.Context, doc *scene.Document) (Event, error)
}

// Session drives the renderer collaborator, one round-trip at a time.
// Each Present spawns the renderer, feeds it the serialized document on
// stdin and blocks until the renderer reports a single event line on
// stdout.
//
// The renderer owns the display, so round-trips are strictly sequential;
// Session serializes them with an internal mutex.
type Session struct {
	rendererPath string
	logger       *zap.Logger

	mu sync.Mutex
}

// NewSession creates a Session that invokes the given renderer binary.
func NewSession(rendererPath string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		rendererPath: rendererPath,
		logger:       logger,
	}
}

// Present renders one scene and blocks until the user acts on it.
// Round-trips are deliberately unbounded: the user may sit on a form for
// as long as they like, so ctx carries no implicit timeout; cancellation
// kills the renderer.
func (s *Session) Present(ctx context.Context, doc *scene.Document) (Event, error) {
	line, err := s.roundTrip(ctx, doc)
	if err != nil {
		return nil, err
	}

	if line == "" {
		return nil, &ProtocolError{Line: "", Reason: "renderer exited without reporting an event"}
	}

	event, err := ParseEvent(line)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("renderer event",
		zap.Int("directives", doc.Len()),
		zap.String("line", line),
	)
	return event, nil
}

// Show renders one scene without waiting for a user action. It is used
// for transient screens (the connecting splash) that dismiss themselves
// via a "@timeout" attribute; any output the renderer produces is
// discarded.
func (s *Session) Show(ctx context.Context, doc *scene.Document) error {
	_, err := s.roundTrip(ctx, doc)
	return err
}

// roundTrip runs the renderer once and returns the first line of its
// output.
func (s *Session) roundTrip(ctx context.Context, doc *scene.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.CommandContext(ctx, s.rendererPath)
	cmd.Stdin = strings.NewReader(doc.Serialize())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("renderer %s failed: %w (stderr: %s)",
			s.rendererPath, err, strings.TrimSpace(stderr.String()))
	}

	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line), nil
}
