package discovery

import (
	"context"
	"strconv"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
)

const (
	// ServiceType is the DNS-SD service type advertised by remote
	// display servers
	ServiceType = "_rfb._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultMDNSTimeout is the default browse duration. The browse
	// always runs for the full duration; servers answer within the
	// first second or two on a healthy link.
	DefaultMDNSTimeout = 5 * time.Second

	// DefaultDisplayPort is assumed when an advertisement carries no
	// port
	DefaultDisplayPort = 5900
)

// MDNSScanner discovers candidate servers advertising themselves over
// DNS-SD. Like the port scanner, it is best-effort: any failure degrades
// to an empty result.
type MDNSScanner struct {
	// Timeout is the browse duration
	Timeout time.Duration

	logger *zap.Logger
}

// NewMDNSScanner creates an mDNS scanner with the default timeout.
func NewMDNSScanner(logger *zap.Logger) *MDNSScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MDNSScanner{
		Timeout: DefaultMDNSTimeout,
		logger:  logger,
	}
}

// Browse collects every _rfb._tcp advertisement heard within the timeout
// and returns one Endpoint per advertised server.
func (s *MDNSScanner) Browse(ctx context.Context) []Endpoint {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		s.logger.Warn("mDNS resolver unavailable", zap.Error(err))
		return nil
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan []Endpoint, 1)

	go func() {
		var endpoints []Endpoint
		for entry := range entries {
			if ep, ok := parseServiceEntry(entry); ok {
				endpoints = append(endpoints, ep)
			}
		}
		done <- endpoints
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		s.logger.Warn("mDNS browse failed", zap.Error(err))
		return nil
	}

	<-ctx.Done()
	endpoints := <-done

	s.logger.Info("mDNS browse complete", zap.Int("candidates", len(endpoints)))
	return endpoints
}

// parseServiceEntry converts a zeroconf service entry to an Endpoint.
// Returns false for entries without a usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) (Endpoint, bool) {
	// Prefer IPv4
	var host string
	for _, addr := range entry.AddrIPv4 {
		host = addr.String()
		break
	}
	if host == "" && len(entry.AddrIPv6) > 0 {
		host = entry.AddrIPv6[0].String()
	}
	if host == "" {
		return Endpoint{}, false
	}

	port := entry.Port
	if port == 0 {
		port = DefaultDisplayPort
	}

	return Endpoint{Host: host, Port: strconv.Itoa(port)}, true
}
