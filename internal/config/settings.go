package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName      = "vncpick"
	settingsFile = "config.yaml"

	// historyFile is the persisted most-recently-used server list,
	// plain text, one "host port" pair per line.
	historyFile = "history"

	// viewerLogFile captures the viewer collaborator's stderr for the
	// most recent session.
	viewerLogFile = "viewer.log"
)

// Mutex for thread-safe settings file operations
var fileMutex sync.Mutex

// Settings holds the user-tunable configuration for vncpick. All fields
// have working defaults; a missing settings file is not an error.
type Settings struct {
	// Version is the settings schema version (currently 1)
	Version int `yaml:"version"`

	// Renderer is the scene renderer collaborator binary (name or path)
	Renderer string `yaml:"renderer"`

	// Viewer is the remote-viewing collaborator binary (name or path)
	Viewer string `yaml:"viewer"`

	// Scanner is the port scanner collaborator binary (name or path).
	// Its absence degrades discovery rather than failing startup.
	Scanner string `yaml:"scanner"`

	// Interface is the network interface whose subnet is scanned for
	// candidate servers
	Interface string `yaml:"interface"`

	// PortRangeStart and PortRangeEnd bound the scanned port range
	PortRangeStart int `yaml:"port_range_start"`
	PortRangeEnd   int `yaml:"port_range_end"`

	// ScanTimeoutSeconds bounds one scanner invocation
	ScanTimeoutSeconds int `yaml:"scan_timeout_seconds"`

	// MDNSEnabled controls the supplementary DNS-SD browse for servers
	// advertising _rfb._tcp
	MDNSEnabled bool `yaml:"mdns_enabled"`

	// MDNSTimeoutSeconds bounds one mDNS browse
	MDNSTimeoutSeconds int `yaml:"mdns_timeout_seconds"`

	// SplashSeconds is how long the connecting splash stays on screen
	SplashSeconds int `yaml:"splash_seconds"`
}

// DefaultSettings returns a Settings with the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Version:            1,
		Renderer:           "simple",
		Viewer:             "vncviewer",
		Scanner:            "nmap",
		Interface:          "usb0",
		PortRangeStart:     5900,
		PortRangeEnd:       5905,
		ScanTimeoutSeconds: 30,
		MDNSEnabled:        true,
		MDNSTimeoutSeconds: 5,
		SplashSeconds:      2,
	}
}

// GetConfigDir returns the OS-appropriate configuration directory.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/vncpick or $HOME/.config/vncpick
//   - macOS: $HOME/.config/vncpick (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\vncpick
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetCacheDir returns the user-scoped cache directory where mutable state
// (server history, viewer log) lives.
func GetCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// GetSettingsPath returns the full path to the settings file.
func GetSettingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, settingsFile), nil
}

// HistoryPath returns the full path to the server history file.
func HistoryPath() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, historyFile), nil
}

// ViewerLogPath returns the full path to the viewer stderr capture file.
func ViewerLogPath() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, viewerLogFile), nil
}

// ensureConfigDir ensures the configuration directory exists.
func ensureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// LoadSettings loads the settings file from disk. A missing file yields
// the defaults; a present but unreadable or unparseable file is an error
// (a half-broken settings file should be fixed, not silently ignored).
func LoadSettings() (*Settings, error) {
	path, err := GetSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings path: %w", err)
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings from an explicit path.
func LoadSettingsFrom(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if settings.Version != 1 {
		return nil, fmt.Errorf("unsupported settings version: %d (expected 1)", settings.Version)
	}

	return settings, nil
}

// Save writes the settings to disk.
// Performs an atomic write to prevent corruption on crash.
func (s *Settings) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := ensureConfigDir(); err != nil {
		return fmt.Errorf("failed to ensure config directory exists: %w", err)
	}

	path, err := GetSettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	header := []byte(`# vncpick configuration file
#
# Collaborator binaries may be bare names (resolved via PATH) or absolute
# paths. Delete this file to return to the built-in defaults.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary settings file: %w", err)
	}

	// Atomic rename (this is atomic on all platforms)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save settings file: %w", err)
	}

	return nil
}
