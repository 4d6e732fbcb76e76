// Package scene builds the declarative scene documents sent to the
// renderer collaborator.
//
// A scene is an ordered sequence of text directives. Global attributes
// take the form "@name args..." and apply to subsequently added widgets;
// widgets take the form "[kind:id x y w h label]" (the ":id" part is
// omitted for display-only widgets). Directive order is render order.
//
// # Usage
//
//	b := scene.NewBuilder()
//	b.SetAttribute("justify", "center")
//	b.AddWidget(scene.WidgetLabel, 0, 100, scene.CanvasWidth, 50, "Pick a server")
//	b.AddNamedWidget(scene.WidgetButton, "quit", 602, 1700, 200, 80, "Quit")
//	doc := b.Document()
//
// The resulting Document is an immutable snapshot; it exists only for the
// duration of one renderer round-trip.
package scene
