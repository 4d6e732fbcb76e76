// Package config manages the persisted vncpick settings file.
//
// Settings live in a YAML file in the user's config directory and cover
// the three external collaborators (renderer, viewer, scanner), the
// discovery interface and port range, and the various timeouts. All
// settings have working defaults, so a missing file is never an error and
// a fresh install needs no setup.
//
// The package also resolves the cache-directory paths for mutable state:
// the server history file and the viewer stderr log. These are returned
// as explicit paths so callers construct their stores with a known
// location instead of reaching for globals.
//
// Writes are atomic (temp file + rename) so a crash mid-save never leaves
// a truncated settings file behind.
package config
