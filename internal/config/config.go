package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// AppDirName is the name of the configuration directory under $HOME
	AppDirName = ".blueline"
)

// ProfileFileNames lists the accepted profile file names, in lookup order.
var ProfileFileNames = []string{".profiles.json", ".profiles.jsonc", ".profiles.yaml", ".profiles.yml"}

var (
	// ConfigDir is the global configuration directory (~/.blueline)
	ConfigDir string

	// DatabasePath is the SQLite database file for request history
	DatabasePath string

	// SessionFile is the session state file
	SessionFile string

	// ProfilesFile is the default profiles configuration file
	ProfilesFile string

	// KeybindsFile holds keybinding overrides
	KeybindsFile string

	// LogDir is where the file logger writes
	LogDir string
)

// Initialize sets up the configuration directories and files.
// It creates ~/.blueline/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, AppDirName))
}

// InitializeAt is Initialize rooted at dir.
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "blueline.db")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	ProfilesFile = filepath.Join(ConfigDir, ".profiles.json")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	LogDir = filepath.Join(ConfigDir, "logs")

	for _, d := range []string{ConfigDir, LogDir} {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	// Create empty session file if it doesn't exist
	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		if err := os.WriteFile(SessionFile, []byte(`{}`), FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	// Create a default profiles file if none exists
	if GlobalProfilesFile() == "" {
		defaultProfiles := []byte(`[{"name":"default","headers":{},"variables":{}}]`)
		if err := os.WriteFile(ProfilesFile, defaultProfiles, FilePermissions); err != nil {
			return fmt.Errorf("failed to create profiles file: %w", err)
		}
	}

	return nil
}

// LogFile returns the default log file path.
func LogFile() string {
	return filepath.Join(LogDir, "blueline.log")
}

// GlobalProfilesFile returns the first profile file present in ConfigDir, or
// "" when there is none.
func GlobalProfilesFile() string {
	return firstExisting(ConfigDir)
}

// LocalConfigExists checks if there's a local session or profiles file
func LocalConfigExists() bool {
	_, sessionErr := os.Stat(".session.json")
	return sessionErr == nil || firstExisting(".") != ""
}

// GetSessionFilePath returns the session file path (local or global)
func GetSessionFilePath() string {
	if _, err := os.Stat(".session.json"); err == nil {
		return ".session.json"
	}
	return SessionFile
}

// GetProfilesFilePath returns the profiles file path (local or global)
func GetProfilesFilePath() string {
	if local := firstExisting("."); local != "" {
		return local
	}
	if global := GlobalProfilesFile(); global != "" {
		return global
	}
	return ProfilesFile
}

func firstExisting(dir string) string {
	for _, name := range ProfileFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
