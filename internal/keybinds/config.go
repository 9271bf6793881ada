package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration. Each section maps
// an action name to a comma-separated key list; an empty list unbinds the
// action in that section.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Normal  map[string]string `json:"normal,omitempty"`
	Visual  map[string]string `json:"visual,omitempty"`
	Insert  map[string]string `json:"insert,omitempty"`
	Command map[string]string `json:"command,omitempty"`
}

func (c *Config) section(ctx Context) map[string]string {
	switch ctx {
	case ContextGlobal:
		return c.Global
	case ContextNormal:
		return c.Normal
	case ContextVisual:
		return c.Visual
	case ContextInsert:
		return c.Insert
	case ContextCommand:
		return c.Command
	}
	return nil
}

// LoadConfig loads keybinding configuration from a JSON file. Comments and
// trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry
// User bindings replace the default keys of the same action
func ApplyConfig(registry *Registry, config *Config) error {
	for _, ctx := range AllContexts {
		for actionStr, keyList := range config.section(ctx) {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s: %w", ctx, err)
			}
			for _, old := range registry.GetBinding(ctx, action) {
				if act, ok := registry.bindings[ctx][old]; ok && act == action {
					registry.Unbind(ctx, old)
				}
			}
			for _, key := range splitKeys(keyList) {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", ctx, action, err)
				}
				registry.Register(ctx, key, action)
			}
		}
	}
	return nil
}

func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}
		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults exports the default keybindings as a config file
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}
	targets := map[Context]*map[string]string{
		ContextGlobal:  &config.Global,
		ContextNormal:  &config.Normal,
		ContextVisual:  &config.Visual,
		ContextInsert:  &config.Insert,
		ContextCommand: &config.Command,
	}
	for ctx, target := range targets {
		section := make(map[string]string)
		for key, action := range r.bindings[ctx] {
			keys := r.GetBinding(ctx, action)
			if len(keys) > 0 && keys[0] == key {
				section[string(action)] = strings.Join(keys, ",")
			}
		}
		*target = section
	}
	return config
}
