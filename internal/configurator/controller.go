package configurator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/renderer"
)

// ErrQuit is returned by Run when the user quits the configuration
// screen. Quitting is not an error condition for the program; callers
// must treat it distinctly from real failures.
var ErrQuit = errors.New("configuration cancelled by user")

// Result is a terminal configuration outcome: the chosen endpoint plus
// the input modes to launch the viewer with.
type Result struct {
	Endpoint discovery.Endpoint
	Modes    InputModes
}

// Controller runs the configuration loop: render the form, wait for one
// event, apply it, repeat until the user picks a server or quits.
type Controller struct {
	presenter renderer.Presenter
	logger    *zap.Logger
}

// NewController creates a Controller rendering through the given
// presenter.
func NewController(presenter renderer.Presenter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		presenter: presenter,
		logger:    logger,
	}
}

// Run drives the loop to a terminal transition. It returns the chosen
// Result, ErrQuit on cancellation, or the underlying error when a
// renderer round-trip or event fails (protocol violations abort the loop
// rather than guessing).
func (c *Controller) Run(ctx context.Context, state FormState) (Result, error) {
	for {
		event, err := c.presenter.Present(ctx, buildScene(state))
		if err != nil {
			return Result{}, err
		}

		next, result, err := applyEvent(state, event)
		if err != nil {
			return Result{}, err
		}
		if result != nil {
			c.logger.Info("server chosen",
				zap.String("endpoint", result.Endpoint.String()),
				zap.Bool("buttons", result.Modes.Buttons),
				zap.Bool("pen", result.Modes.Pen),
				zap.Bool("touch", result.Modes.Touch),
			)
			return *result, nil
		}
		state = next
	}
}

// applyEvent computes one transition. Non-terminal transitions return the
// next FormState; terminal ones return a Result or ErrQuit. Events that
// reference widgets or fields the form never generated are protocol
// violations.
func applyEvent(state FormState, event renderer.Event) (FormState, *Result, error) {
	switch ev := event.(type) {
	case renderer.TextChanged:
		switch ev.Field {
		case FieldHost:
			state.ManualHost = ev.Value
		case FieldPort:
			state.ManualPort = ev.Value
		default:
			return state, nil, &renderer.ProtocolError{
				Line:   fmt.Sprintf("input: %s : %s", ev.Field, ev.Value),
				Reason: "input event for unknown field",
			}
		}
		return state, nil, nil

	case renderer.Selected:
		return applySelection(state, ev.Widget)

	default:
		return state, nil, &renderer.ProtocolError{Reason: fmt.Sprintf("unhandled event type %T", event)}
	}
}

func applySelection(state FormState, widget string) (FormState, *Result, error) {
	// Candidate buttons are generated 1:1 with the lists, so an index
	// out of range means the renderer reported a widget this form never
	// contained.
	for _, candidates := range []struct {
		prefix string
		list   discovery.CandidateList
	}{
		{usbPrefix, state.USBCandidates},
		{mdnsPrefix, state.MDNSCandidates},
		{histPrefix, state.HistCandidates},
	} {
		if n, ok := candidateIndex(widget, candidates.prefix); ok {
			if n >= candidates.list.Len() {
				return state, nil, &renderer.ProtocolError{
					Line:   "selected: " + widget,
					Reason: "candidate index out of range",
				}
			}
			return state, &Result{
				Endpoint: candidates.list.Endpoints[n],
				Modes:    state.Modes,
			}, nil
		}
	}

	switch widget {
	case WidgetManualConnect:
		// The raw strings pass through untouched; a malformed host or
		// port is the viewer's to reject.
		return state, &Result{
			Endpoint: discovery.Endpoint{Host: state.ManualHost, Port: state.ManualPort},
			Modes:    state.Modes,
		}, nil

	case ToggleButtons:
		state.Modes.Buttons = !state.Modes.Buttons
		return state, nil, nil
	case TogglePen:
		state.Modes.Pen = !state.Modes.Pen
		return state, nil, nil
	case ToggleTouch:
		state.Modes.Touch = !state.Modes.Touch
		return state, nil, nil

	case WidgetQuit:
		return state, nil, ErrQuit

	default:
		return state, nil, &renderer.ProtocolError{
			Line:   "selected: " + widget,
			Reason: "selection of unknown widget",
		}
	}
}
