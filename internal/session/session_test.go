package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/studiowebux/blueline/internal/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProfiles_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    ".profiles.json",
			content: `[{"name":"dev","baseUrl":"http://localhost:8080","headers":{"Accept":"application/json"}}]`,
		},
		{
			name: "jsonc",
			file: ".profiles.jsonc",
			content: `[
				// local server
				{"name": "dev", "baseUrl": "http://localhost:8080", "headers": {"Accept": "application/json",},},
			]`,
		},
		{
			name:    "yaml",
			file:    ".profiles.yaml",
			content: "- name: dev\n  baseUrl: http://localhost:8080\n  headers:\n    Accept: application/json\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			profilesPath := filepath.Join(dir, tt.file)
			writeFile(t, profilesPath, tt.content)

			m := NewManager(filepath.Join(dir, ".session.json"), profilesPath)
			if err := m.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}
			p := m.GetActiveProfile()
			if p.Name != "dev" || p.BaseURL != "http://localhost:8080" {
				t.Errorf("active profile = %+v", p)
			}
			if p.Headers["Accept"] != "application/json" {
				t.Errorf("headers = %v", p.Headers)
			}
			if p.Variables == nil {
				t.Error("variables map should be initialized")
			}
		})
	}
}

func TestLoadProfiles_Missing(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, ".session.json"), filepath.Join(dir, "none.json"))
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if got := m.GetActiveProfile().Name; got != DefaultProfileName {
		t.Errorf("active profile = %s", got)
	}
}

func TestParseProfiles_Invalid(t *testing.T) {
	if _, err := ParseProfiles("p.json", []byte(`[{"baseUrl":"x"}]`)); err == nil {
		t.Error("expected an error for a profile without a name")
	}
	if _, err := ParseProfiles("p.json", []byte(`[{"name":"a"},{"name":"a"}]`)); err == nil {
		t.Error("expected an error for duplicate names")
	}
	if _, err := ParseProfiles("p.yml", []byte("name: [")); err == nil {
		t.Error("expected a YAML syntax error")
	}
}

func TestSetActiveProfile_Persists(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, ".session.json")
	profilesPath := filepath.Join(dir, ".profiles.json")
	writeFile(t, profilesPath, `[{"name":"dev"},{"name":"prod","baseUrl":"https://api.test"}]`)

	m := NewManager(sessionPath, profilesPath)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if err := m.SetActiveProfile("prod"); err != nil {
		t.Fatalf("SetActiveProfile: %v", err)
	}
	if err := m.SetActiveProfile("nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("unknown profile: err = %v", err)
	}

	reloaded := NewManager(sessionPath, profilesPath)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if got := reloaded.GetActiveProfile().Name; got != "prod" {
		t.Errorf("reloaded active profile = %s", got)
	}
	if got := strings.Join(reloaded.ProfileNames(), ","); got != "dev,prod" {
		t.Errorf("ProfileNames = %s", got)
	}
}

func TestUseProfile_DoesNotPersist(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, ".session.json")
	profilesPath := filepath.Join(dir, ".profiles.json")
	writeFile(t, profilesPath, `[{"name":"dev"},{"name":"prod"}]`)

	m := NewManager(sessionPath, profilesPath)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}
	if err := m.UseProfile("prod"); err != nil {
		t.Fatal(err)
	}
	if m.GetActiveProfile().Name != "prod" {
		t.Error("UseProfile did not switch")
	}
	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Error("UseProfile should not write the session file")
	}
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), ".session.json"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Update(func(sess *types.Session) error {
				sess.ActiveProfile += "x"
				return nil
			}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	sess, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if sess.ActiveProfile != "xxxxxxxx" {
		t.Errorf("lost updates: %q", sess.ActiveProfile)
	}
}

func TestProfilesSchema(t *testing.T) {
	b, err := ProfilesSchema()
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc["type"] != "array" {
		t.Errorf("schema type = %v", doc["type"])
	}
	if !strings.Contains(string(b), "baseUrl") {
		t.Error("schema does not describe baseUrl")
	}
}
