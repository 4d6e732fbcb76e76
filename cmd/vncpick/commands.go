package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okranz/vncpick/internal/config"
	"github.com/okranz/vncpick/internal/discovery"
	"github.com/okranz/vncpick/internal/history"
	"github.com/okranz/vncpick/internal/logging"
	"github.com/okranz/vncpick/internal/renderer"
	"github.com/okranz/vncpick/internal/supervisor"
	"github.com/okranz/vncpick/internal/ui"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

// runSession wires the collaborators together and runs the interactive
// session loop until the user quits.
func runSession(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	checks := supervisor.CheckCollaborators(settings.Renderer, settings.Viewer, settings.Scanner)
	if missing := supervisor.MissingRequired(checks); len(missing) > 0 {
		for _, c := range missing {
			ui.PrintFailure(
				fmt.Sprintf("Required collaborator %q not found", c.Name),
				c.Err,
				[]string{
					fmt.Sprintf("Install %q or point the %s setting at it", c.Binary, c.Name),
					"Settings file: run 'vncpick --help' or see the config directory",
				},
			)
		}
		return fmt.Errorf("%d required collaborator(s) missing", len(missing))
	}

	scannerAvailable := true
	for _, c := range checks {
		if c.Name == "scanner" && !c.Available {
			scannerAvailable = false
			ui.PrintWarning("Network discovery disabled", map[string]string{
				"Binary": c.Binary,
				"Effect": "only remembered and manually entered servers are offered",
			})
			logging.Warn("scanner collaborator not installed")
		}
	}

	historyPath, err := config.HistoryPath()
	if err != nil {
		return err
	}
	viewerLogPath, err := config.ViewerLogPath()
	if err != nil {
		return err
	}

	logger := logging.GetLogger()
	screens := renderer.NewSession(settings.Renderer, logger)
	launcher := supervisor.NewExecLauncher(settings.Viewer, viewerLogPath, logger)

	portScanner := discovery.NewPortScanner(
		settings.Scanner, settings.Interface,
		settings.PortRangeStart, settings.PortRangeEnd, logger)
	portScanner.Timeout = time.Duration(settings.ScanTimeoutSeconds) * time.Second

	var discoverUSB supervisor.DiscoverFunc
	if scannerAvailable {
		discoverUSB = portScanner.ScanLocalLink
	}

	var discoverMDNS supervisor.DiscoverFunc
	if settings.MDNSEnabled {
		mdnsScanner := discovery.NewMDNSScanner(logger)
		mdnsScanner.Timeout = time.Duration(settings.MDNSTimeoutSeconds) * time.Second
		discoverMDNS = mdnsScanner.Browse
	}

	sup := supervisor.New(supervisor.Config{
		Screens:        screens,
		Launcher:       launcher,
		History:        history.NewStore(historyPath, logger),
		DiscoverUSB:    discoverUSB,
		DiscoverMDNS:   discoverMDNS,
		SplashDuration: time.Duration(settings.SplashSeconds) * time.Second,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return sup.Run(ctx)
}

// scanCmd runs both discovery paths once and prints the candidates.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for remote display servers",
	Long: `Run one round of server discovery and print the results.

Scans the local subnet of the configured interface for open display
ports and browses DNS-SD for advertised servers. Useful for checking
discovery without starting the interactive loop.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.GetLogger()

	portScanner := discovery.NewPortScanner(
		settings.Scanner, settings.Interface,
		settings.PortRangeStart, settings.PortRangeEnd, logger)
	portScanner.Timeout = time.Duration(settings.ScanTimeoutSeconds) * time.Second

	var usb []discovery.Endpoint
	if portScanner.Available() {
		fmt.Printf("Scanning %s subnet ports %d-%d...\n",
			settings.Interface, settings.PortRangeStart, settings.PortRangeEnd)
		usb = portScanner.ScanLocalLink(ctx)
	} else {
		fmt.Printf("Scanner %q not installed, skipping port scan.\n", settings.Scanner)
	}

	var mdns []discovery.Endpoint
	if settings.MDNSEnabled {
		fmt.Printf("Browsing DNS-SD for %s services...\n", discovery.ServiceType)
		mdnsScanner := discovery.NewMDNSScanner(logger)
		mdnsScanner.Timeout = time.Duration(settings.MDNSTimeoutSeconds) * time.Second
		mdns = mdnsScanner.Browse(ctx)
	}

	if len(usb)+len(mdns) == 0 {
		fmt.Println("\nNo servers found.")
		return nil
	}

	fmt.Printf("\nFound %d server(s):\n", len(usb)+len(mdns))
	for _, ep := range usb {
		fmt.Printf("  %-24s (%s)\n", ep.String(), discovery.SourceUSB)
	}
	for _, ep := range mdns {
		fmt.Printf("  %-24s (%s)\n", ep.String(), discovery.SourceMDNS)
	}

	return nil
}
