package configurator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okranz/vncpick/internal/discovery"
)

// Text field identifiers used in the manual-entry section.
const (
	FieldHost = "host"
	FieldPort = "port"
)

// Action widget identifiers.
const (
	WidgetManualConnect = "manualsrv"
	WidgetQuit          = "quit"
	WidgetBack          = "back"
)

// Candidate button identifier prefixes. The full identifier is the
// prefix followed by the zero-based index into the matching candidate
// list ("usbsrv-0", "histsrv-2", ...).
const (
	usbPrefix  = "usbsrv-"
	mdnsPrefix = "mdnssrv-"
	histPrefix = "histsrv-"
)

// Input-mode toggle widget identifiers.
const (
	ToggleButtons = "togglebuttons"
	TogglePen     = "togglepen"
	ToggleTouch   = "toggletouch"
)

// InputModes selects which input kinds the viewer forwards to the remote
// side. All kinds are enabled by default; disabled kinds become
// --no-<kind> flags on the viewer invocation.
type InputModes struct {
	Buttons bool
	Pen     bool
	Touch   bool
}

// DefaultInputModes returns InputModes with every kind enabled.
func DefaultInputModes() InputModes {
	return InputModes{Buttons: true, Pen: true, Touch: true}
}

// ViewerFlags returns the disable-flags for the viewer invocation, one
// per mode that is off, in a fixed order.
func (m InputModes) ViewerFlags() []string {
	var flags []string
	if !m.Buttons {
		flags = append(flags, "--no-buttons")
	}
	if !m.Pen {
		flags = append(flags, "--no-pen")
	}
	if !m.Touch {
		flags = append(flags, "--no-touch")
	}
	return flags
}

// FormState is the controller's working memory for one configuration
// loop. It is a value type threaded through the loop: every transition
// produces a new FormState, and the whole state is rebuilt into a scene
// on each iteration.
type FormState struct {
	USBCandidates  discovery.CandidateList
	MDNSCandidates discovery.CandidateList
	HistCandidates discovery.CandidateList

	ManualHost string
	ManualPort string

	Modes InputModes
}

// NewFormState assembles the initial form from the discovered and
// remembered candidates.
func NewFormState(usb, mdns []discovery.Endpoint, hist []discovery.Endpoint) FormState {
	return FormState{
		USBCandidates:  discovery.CandidateList{Source: discovery.SourceUSB, Endpoints: usb},
		MDNSCandidates: discovery.CandidateList{Source: discovery.SourceMDNS, Endpoints: mdns},
		HistCandidates: discovery.CandidateList{Source: discovery.SourceHistory, Endpoints: hist},
		Modes:          DefaultInputModes(),
	}
}

// candidateIndex extracts the index from a candidate widget identifier.
func candidateIndex(widget, prefix string) (int, bool) {
	if !strings.HasPrefix(widget, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(widget, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// toggleLabel renders an on/off toggle button label.
func toggleLabel(kind string, enabled bool) string {
	state := "on"
	if !enabled {
		state = "off"
	}
	return fmt.Sprintf("%s: %s", kind, state)
}
