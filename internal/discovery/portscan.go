package discovery

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultScanTimeout bounds one scanner invocation. The scanned subnet is
// a local link, so a healthy scan finishes in a few seconds; the bound
// exists to keep a wedged scanner from blocking the whole tool.
const DefaultScanTimeout = 30 * time.Second

// PortScanner discovers candidate servers by invoking the external port
// scanner collaborator against the local subnet of a single interface.
//
// Discovery is best-effort throughout: a missing scanner, an interface
// without an address, a failed invocation or unparseable output all
// degrade to an empty result, never an error.
type PortScanner struct {
	// ScannerPath is the scanner binary (name or path)
	ScannerPath string

	// Interface is the network interface whose IPv4 subnet is scanned
	Interface string

	// PortRangeStart and PortRangeEnd bound the scanned ports
	PortRangeStart int
	PortRangeEnd   int

	// Timeout is the maximum time for one scanner invocation
	Timeout time.Duration

	logger *zap.Logger
}

// NewPortScanner creates a scanner for the given collaborator binary and
// interface, scanning the given inclusive port range.
func NewPortScanner(scannerPath, iface string, portStart, portEnd int, logger *zap.Logger) *PortScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortScanner{
		ScannerPath:    scannerPath,
		Interface:      iface,
		PortRangeStart: portStart,
		PortRangeEnd:   portEnd,
		Timeout:        DefaultScanTimeout,
		logger:         logger,
	}
}

// Available reports whether the scanner collaborator can be invoked at
// all. Callers surface its absence once, at startup, as a warning.
func (s *PortScanner) Available() bool {
	_, err := exec.LookPath(s.ScannerPath)
	return err == nil
}

// ScanLocalLink scans the interface's subnet for open ports in the
// configured range and returns one Endpoint per open port per host.
// The result is empty on any failure.
func (s *PortScanner) ScanLocalLink(ctx context.Context) []Endpoint {
	subnet, err := subnetForInterface(s.Interface)
	if err != nil {
		s.logger.Warn("subnet lookup failed, skipping port scan",
			zap.String("interface", s.Interface),
			zap.Error(err),
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	portRange := fmt.Sprintf("%d-%d", s.PortRangeStart, s.PortRangeEnd)
	cmd := exec.CommandContext(ctx, s.ScannerPath,
		"-n", "-p", portRange, "--open", "-oG", "-", subnet)

	s.logger.Debug("running port scan",
		zap.String("scanner", s.ScannerPath),
		zap.String("subnet", subnet),
		zap.String("ports", portRange),
	)

	output, err := cmd.Output()
	if err != nil {
		s.logger.Warn("port scan failed",
			zap.String("scanner", s.ScannerPath),
			zap.Error(err),
		)
		return nil
	}

	endpoints := parseScanOutput(string(output))
	s.logger.Info("port scan complete",
		zap.String("subnet", subnet),
		zap.Int("candidates", len(endpoints)),
	)
	return endpoints
}

// subnetForInterface returns the IPv4 network of the named interface in
// CIDR form (for example "10.11.99.0/29").
func subnetForInterface(name string) (string, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return "", fmt.Errorf("interface %s: %w", name, err)
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return "", fmt.Errorf("interface %s addresses: %w", name, err)
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipnet.IP.To4()
		if ip4 == nil {
			continue
		}
		network := &net.IPNet{
			IP:   ip4.Mask(ipnet.Mask),
			Mask: ipnet.Mask,
		}
		return network.String(), nil
	}

	return "", fmt.Errorf("interface %s has no IPv4 address", name)
}

// parseScanOutput extracts endpoints from the scanner's grep-able output.
// Relevant lines look like:
//
//	Host: 10.11.99.1 ()  Ports: 5900/open/tcp//vnc///, 5901/open/tcp//vnc///
//
// One Endpoint is produced per open port per host. Lines that do not fit
// are skipped.
func parseScanOutput(output string) []Endpoint {
	var endpoints []Endpoint

	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Host:") {
			continue
		}
		_, portsPart, found := strings.Cut(line, "Ports:")
		if !found {
			continue
		}

		fields := strings.Fields(strings.TrimPrefix(line, "Host:"))
		if len(fields) == 0 {
			continue
		}
		host := fields[0]

		for _, entry := range strings.Split(portsPart, ",") {
			parts := strings.Split(strings.TrimSpace(entry), "/")
			if len(parts) < 2 || parts[1] != "open" {
				continue
			}
			port := parts[0]
			if _, err := strconv.Atoi(port); err != nil {
				continue
			}
			endpoints = append(endpoints, Endpoint{Host: host, Port: port})
		}
	}

	return endpoints
}
