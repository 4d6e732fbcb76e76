package discovery

import "fmt"

// Source tags a candidate list with where its endpoints came from.
type Source string

const (
	// SourceUSB marks endpoints found by port-scanning the local link
	// of the configured interface
	SourceUSB Source = "usb-discovered"

	// SourceMDNS marks endpoints found via DNS-SD ("_rfb._tcp")
	SourceMDNS Source = "mdns-discovered"

	// SourceHistory marks endpoints loaded from the persisted
	// most-recently-used list
	SourceHistory Source = "history"
)

// Endpoint identifies a remote display server. Equality is structural.
//
// Port is kept as a string deliberately: manually entered values pass
// through to the viewer collaborator unvalidated, so a malformed port has
// to survive the trip from form to argv untouched. Discovery only ever
// produces numeric values.
type Endpoint struct {
	Host string
	Port string
}

// String returns the conventional host:port form.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

// CandidateList is an ordered sequence of endpoints from a single source.
// Order is display order; for SourceHistory it is recency,
// most-recent-first.
type CandidateList struct {
	Source    Source
	Endpoints []Endpoint
}

// Len returns the number of candidate endpoints.
func (c CandidateList) Len() int {
	return len(c.Endpoints)
}
