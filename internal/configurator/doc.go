// Package configurator implements the session configuration state
// machine.
//
// The form offers up to three candidate lists (USB-discovered,
// mDNS-discovered, history), a manual host/port entry, and toggles for
// which input kinds the viewer forwards. Each loop iteration rebuilds the
// whole form from a FormState value, presents it through the renderer,
// and applies the single event that comes back:
//
//   - text edits and input-mode toggles produce a new FormState and
//     another render
//   - picking a candidate, connecting to the manual address, or quitting
//     are terminal
//
// FormState is owned exclusively by the controller and threaded through
// the loop as a value; transitions never mutate shared state. Events
// referencing widgets the form never generated are treated as renderer
// protocol violations and abort the loop.
//
// Manually entered host and port strings are deliberately not validated;
// they pass through to the viewer collaborator as-is.
package configurator
