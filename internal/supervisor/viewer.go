package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/logging"
)

// SessionError reports a failed viewer session. It carries the captured
// error output so the failure can be shown to the user inside the UI
// loop instead of dumped to the terminal.
type SessionError struct {
	// Endpoint is the server the session was connected to
	Endpoint discovery.Endpoint
	// ExitCode is the viewer's exit code, or -1 if it never ran
	ExitCode int
	// LogLines is the captured stderr output, oldest first
	LogLines []string
	// Err is the underlying error, if any
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("viewer session to %s failed (exit code %d, %d log lines)",
		e.Endpoint, e.ExitCode, len(e.LogLines))
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Launcher runs the viewer collaborator for one session. A nil return
// means the session ended normally; a *SessionError means it failed in a
// way the user should see.
type Launcher interface {
	Launch(ctx context.Context, endpoint discovery.Endpoint, flags []string) error
}

// ExecLauncher launches the viewer as a child process and blocks for the
// whole session. The viewer's stderr goes to a fixed log file, truncated
// per session, so the most recent failure is always inspectable.
type ExecLauncher struct {
	// ViewerPath is the viewer binary (name or path)
	ViewerPath string

	// LogPath is where the viewer's stderr is captured
	LogPath string

	logger *zap.Logger
}

// NewExecLauncher creates a launcher for the given viewer binary,
// capturing stderr at logPath.
func NewExecLauncher(viewerPath, logPath string, logger *zap.Logger) *ExecLauncher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecLauncher{
		ViewerPath: viewerPath,
		LogPath:    logPath,
		logger:     logger,
	}
}

// Launch invokes the viewer as "viewer host port [--no-buttons]
// [--no-pen] [--no-touch]" and waits for it to exit.
func (l *ExecLauncher) Launch(ctx context.Context, endpoint discovery.Endpoint, flags []string) error {
	if err := os.MkdirAll(filepath.Dir(l.LogPath), 0700); err != nil {
		return fmt.Errorf("failed to create viewer log directory: %w", err)
	}
	logFile, err := os.Create(l.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create viewer log file: %w", err)
	}
	defer logFile.Close()

	args := append([]string{endpoint.Host, endpoint.Port}, flags...)
	logging.LogSessionStart(endpoint.Host, endpoint.Port, flags)

	cmd := exec.CommandContext(ctx, l.ViewerPath, args...)
	cmd.Stderr = logFile

	runErr := cmd.Run()
	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	logging.LogSessionEnd(endpoint.Host, endpoint.Port, exitCode)

	if runErr == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		// The viewer never ran (spawn failure). Still surfaced as a
		// session error so the user sees it on the error screen.
		return &SessionError{
			Endpoint: endpoint,
			ExitCode: -1,
			LogLines: []string{runErr.Error()},
			Err:      runErr,
		}
	}

	return &SessionError{
		Endpoint: endpoint,
		ExitCode: exitErr.ExitCode(),
		LogLines: l.readLogLines(),
		Err:      runErr,
	}
}

// readLogLines loads the captured stderr, dropping blank lines.
func (l *ExecLauncher) readLogLines() []string {
	data, err := os.ReadFile(l.LogPath)
	if err != nil {
		l.logger.Warn("viewer log unreadable", zap.String("path", l.LogPath), zap.Error(err))
		return nil
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
