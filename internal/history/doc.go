// Package history persists the most-recently-used server list.
//
// The record is a plain-text file in the user cache directory, one
// "host port" pair per line, most-recent-first, capped at MaxEntries.
// Choosing a server promotes it to the front; the record is flushed to
// disk before the session launches so a crash mid-session still
// preserves it.
//
// A missing or corrupt file simply yields an empty record.
package history
