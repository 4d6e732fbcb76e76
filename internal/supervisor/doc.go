// Package supervisor runs the top-level session loop.
//
// One iteration: run the configuration screen, persist the chosen server
// to history (before the session starts, so a crash cannot lose it),
// show a transient connecting splash, launch the viewer collaborator and
// block for the whole session, and on a non-zero exit show the captured
// error output on an acknowledgement screen. Quitting the configuration
// screen is the only normal way out and exits with success.
//
// Session failures are recovered locally: the captured viewer stderr is
// rendered inside the same UI loop and the tool returns to configuration.
// Only renderer protocol violations and startup problems are fatal.
//
// CheckCollaborators probes the three external binaries at startup; the
// renderer and viewer are hard requirements, the scanner degrades to a
// warning.
package supervisor
