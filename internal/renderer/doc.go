// Package renderer drives the external scene renderer collaborator.
//
// The renderer is a separate process that turns a declarative scene
// description (see package scene) into an on-screen interactive form and
// reports back exactly one user action. Each round-trip is single-shot:
// the renderer is spawned, receives the serialized scene on stdin, blocks
// until the user acts, writes one event line to stdout and exits.
//
// # Event grammar
//
//	input: <fieldId> : <value>    text field edited
//	selected: <widgetId>          named widget activated
//
// Any other output is a *ProtocolError. Protocol errors are fatal to the
// configuration loop that observed them; guessing at the user's intent
// from a malformed event would be worse than aborting.
//
// The renderer process is a single shared, sequential resource. Session
// enforces one in-flight round-trip at a time.
package renderer
