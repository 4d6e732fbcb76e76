// Package ui renders terminal diagnostics for startup problems.
//
// Once running, vncpick shows everything through the external renderer
// collaborator; the terminal is only written to before that collaborator
// is known to exist. This package covers exactly that window: styled
// failure boxes for missing required collaborators and warning boxes for
// degraded modes (a missing scanner), sized to the terminal.
package ui
