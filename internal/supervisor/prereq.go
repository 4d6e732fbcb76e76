package supervisor

import "os/exec"

// CollaboratorCheck is the result of probing one external collaborator
// binary.
type CollaboratorCheck struct {
	// Name is the collaborator's role ("renderer", "viewer", "scanner")
	Name string
	// Binary is the configured binary name or path
	Binary string
	// Path is the resolved path when available
	Path string
	// Required marks collaborators the tool cannot run without
	Required bool
	// Available reports whether the binary resolved
	Available bool
	// Err is the lookup error when not available
	Err error
}

// CheckCollaborators probes the three external collaborators. The
// renderer and viewer are required: without them the tool has no UI and
// no sessions. The scanner is optional; its absence only degrades
// discovery and is surfaced as a warning.
func CheckCollaborators(rendererBin, viewerBin, scannerBin string) []CollaboratorCheck {
	checks := []CollaboratorCheck{
		{Name: "renderer", Binary: rendererBin, Required: true},
		{Name: "viewer", Binary: viewerBin, Required: true},
		{Name: "scanner", Binary: scannerBin, Required: false},
	}

	for i := range checks {
		path, err := exec.LookPath(checks[i].Binary)
		if err != nil {
			checks[i].Err = err
			continue
		}
		checks[i].Path = path
		checks[i].Available = true
	}

	return checks
}

// MissingRequired filters a check list down to required collaborators
// that did not resolve.
func MissingRequired(checks []CollaboratorCheck) []CollaboratorCheck {
	var missing []CollaboratorCheck
	for _, c := range checks {
		if c.Required && !c.Available {
			missing = append(missing, c)
		}
	}
	return missing
}
