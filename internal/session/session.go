package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/blueline/internal/types"
)

// DefaultProfileName names the profile used when no profiles file exists.
const DefaultProfileName = "default"

// ErrProfileNotFound is returned when switching to an unknown profile.
var ErrProfileNotFound = errors.New("profile not found")

// Manager handles session and profile management
type Manager struct {
	store        *Store
	profilesPath string
	session      types.Session
	profiles     []types.Profile
}

// NewManager creates a manager for the given session and profiles files.
func NewManager(sessionPath, profilesPath string) *Manager {
	return &Manager{
		store:        NewStore(sessionPath),
		profilesPath: profilesPath,
	}
}

// Load loads session and profiles from disk
func (m *Manager) Load() error {
	if err := m.LoadProfiles(); err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	sess, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	m.session = sess
	return nil
}

// LoadProfiles loads the profiles file. The format follows the extension:
// .json and .jsonc accept comments and trailing commas, .yaml and .yml are YAML.
func (m *Manager) LoadProfiles() error {
	data, err := os.ReadFile(m.profilesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.profiles = []types.Profile{defaultProfile()}
			return nil
		}
		return fmt.Errorf("failed to read profiles file: %w", err)
	}

	profiles, err := ParseProfiles(m.profilesPath, data)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		profiles = []types.Profile{defaultProfile()}
	}
	m.profiles = profiles
	return nil
}

// ParseProfiles decodes a profiles document. name selects the format by
// extension.
func ParseProfiles(name string, data []byte) ([]types.Profile, error) {
	var profiles []types.Profile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &profiles); err != nil {
			return nil, fmt.Errorf("failed to parse profiles file: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &profiles); err != nil {
			return nil, fmt.Errorf("failed to parse profiles file: %w", err)
		}
	}

	seen := make(map[string]bool, len(profiles))
	for i := range profiles {
		name := profiles[i].Name
		if name == "" {
			return nil, fmt.Errorf("profile #%d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate profile name: %s", name)
		}
		seen[name] = true
		if profiles[i].Headers == nil {
			profiles[i].Headers = make(map[string]string)
		}
		if profiles[i].Variables == nil {
			profiles[i].Variables = make(map[string]string)
		}
	}
	return profiles, nil
}

// GetProfiles returns all profiles
func (m *Manager) GetProfiles() []types.Profile {
	return m.profiles
}

// ProfileNames returns profile names sorted alphabetically.
func (m *Manager) ProfileNames() []string {
	names := make([]string, 0, len(m.profiles))
	for _, p := range m.profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// GetActiveProfile returns the currently active profile. An unknown or unset
// session profile falls back to the first profile.
func (m *Manager) GetActiveProfile() *types.Profile {
	if p := m.find(m.session.ActiveProfile); p != nil {
		return p
	}
	if len(m.profiles) > 0 {
		return &m.profiles[0]
	}
	p := defaultProfile()
	return &p
}

// SetActiveProfile sets the active profile by name and persists it.
func (m *Manager) SetActiveProfile(name string) error {
	if m.find(name) == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	err := m.store.Update(func(s *types.Session) error {
		s.ActiveProfile = name
		return nil
	})
	if err != nil {
		return err
	}
	m.session.ActiveProfile = name
	return nil
}

// UseProfile activates a profile for this run without persisting it.
func (m *Manager) UseProfile(name string) error {
	if m.find(name) == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	m.session.ActiveProfile = name
	return nil
}

func (m *Manager) find(name string) *types.Profile {
	if name == "" {
		return nil
	}
	for i := range m.profiles {
		if m.profiles[i].Name == name {
			return &m.profiles[i]
		}
	}
	return nil
}

func defaultProfile() types.Profile {
	return types.Profile{
		Name:      DefaultProfileName,
		Headers:   make(map[string]string),
		Variables: make(map[string]string),
	}
}
