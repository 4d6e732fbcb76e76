package configurator

import (
	"strconv"

	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/scene"
)

// Form layout constants, in canvas pixels.
const (
	marginX  = 102
	contentW = scene.CanvasWidth - 2*marginX

	titleY     = 60
	headerH    = 50
	buttonH    = 80
	rowGap     = 20
	sectionGap = 40

	quitY = 1720
	quitW = 300
)

// buildScene rebuilds the whole form from the current state. Nothing is
// rendered incrementally; the scene is the complete picture of one loop
// iteration.
func buildScene(state FormState) *scene.Document {
	b := scene.NewBuilder()

	b.SetAttribute("justify", "center")
	b.AddWidget(scene.WidgetLabel, marginX, titleY, contentW, headerH, "Remote display servers")
	b.SetAttribute("justify", "left")

	y := titleY + headerH + sectionGap
	y = addCandidateSection(b, y, "Discovered (USB)", usbPrefix, state.USBCandidates)
	y = addCandidateSection(b, y, "Discovered (network)", mdnsPrefix, state.MDNSCandidates)
	y = addCandidateSection(b, y, "Recent servers", histPrefix, state.HistCandidates)
	y = addManualSection(b, y, state)
	addToggleSection(b, y, state.Modes)

	b.SetAttribute("justify", "center")
	b.AddNamedWidget(scene.WidgetButton, WidgetQuit,
		(scene.CanvasWidth-quitW)/2, quitY, quitW, buttonH, "Quit")

	return b.Document()
}

// addCandidateSection emits one selectable button per endpoint, in list
// order. Empty lists produce no section at all.
func addCandidateSection(b *scene.Builder, y int, title, prefix string, list discovery.CandidateList) int {
	if list.Len() == 0 {
		return y
	}

	b.AddWidget(scene.WidgetLabel, marginX, y, contentW, headerH, title)
	y += headerH + rowGap

	for i, ep := range list.Endpoints {
		b.AddNamedWidget(scene.WidgetButton, candidateWidgetID(prefix, i),
			marginX, y, contentW, buttonH, ep.String())
		y += buttonH + rowGap
	}

	return y + sectionGap
}

func addManualSection(b *scene.Builder, y int, state FormState) int {
	b.AddWidget(scene.WidgetLabel, marginX, y, contentW, headerH, "Manual address")
	y += headerH + rowGap

	b.AddNamedWidget(scene.WidgetTextInput, FieldHost,
		marginX, y, 680, buttonH, state.ManualHost)
	b.AddNamedWidget(scene.WidgetTextInput, FieldPort,
		marginX+700, y, 220, buttonH, state.ManualPort)
	b.AddNamedWidget(scene.WidgetButton, WidgetManualConnect,
		marginX+940, y, contentW-940, buttonH, "Connect")

	return y + buttonH + sectionGap
}

func addToggleSection(b *scene.Builder, y int, modes InputModes) {
	b.AddWidget(scene.WidgetLabel, marginX, y, contentW, headerH, "Forwarded inputs")
	y += headerH + rowGap

	toggleW := (contentW - 2*rowGap) / 3
	b.AddNamedWidget(scene.WidgetButton, ToggleButtons,
		marginX, y, toggleW, buttonH, toggleLabel("Buttons", modes.Buttons))
	b.AddNamedWidget(scene.WidgetButton, TogglePen,
		marginX+toggleW+rowGap, y, toggleW, buttonH, toggleLabel("Pen", modes.Pen))
	b.AddNamedWidget(scene.WidgetButton, ToggleTouch,
		marginX+2*(toggleW+rowGap), y, toggleW, buttonH, toggleLabel("Touch", modes.Touch))
}

// candidateWidgetID builds the widget identifier for the i-th entry of a
// candidate list ("usbsrv-0", "histsrv-2", ...).
func candidateWidgetID(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}
