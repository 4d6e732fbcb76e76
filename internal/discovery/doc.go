// Package discovery locates candidate remote display servers on the
// local network.
//
// Two independent sources feed the configuration UI:
//
//   - PortScanner invokes the external scanner collaborator against the
//     IPv4 subnet of a configured interface (the USB link by default),
//     restricted to the conventional display-server port range, and
//     parses its grep-able output.
//   - MDNSScanner browses DNS-SD for servers advertising "_rfb._tcp".
//
// Both sources are strictly best-effort. A missing scanner binary, an
// interface without an address, a failed invocation, malformed output or
// an unavailable mDNS stack all yield an empty candidate list for that
// round; discovery never returns an error. The only user-visible signal
// is a single startup warning when the scanner collaborator is not
// installed at all (see PortScanner.Available).
//
// The package also defines Endpoint, the (host, port) pair every other
// part of the tool trades in, and CandidateList, an ordered sequence of
// endpoints tagged with its source.
package discovery
