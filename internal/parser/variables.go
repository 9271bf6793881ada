package parser

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/studiowebux/blueline/internal/types"
)

// Variable placeholder pattern: {{varName}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// VariableResolver handles variable resolution for requests
type VariableResolver struct {
	// Variables are resolved from the profile; {{env.NAME}} reads envVars
	profileVars map[string]string
	envVars     map[string]string
	unresolved  []string
}

// NewVariableResolver creates a new variable resolver
// Either map can be nil
func NewVariableResolver(profileVars map[string]string, envVars map[string]string) *VariableResolver {
	if profileVars == nil {
		profileVars = make(map[string]string)
	}
	if envVars == nil {
		envVars = make(map[string]string)
	}
	return &VariableResolver{
		profileVars: profileVars,
		envVars:     envVars,
	}
}

// GetUnresolvedVariables returns the unique variable names that couldn't be resolved
func (vr *VariableResolver) GetUnresolvedVariables() []string {
	seen := make(map[string]bool)
	unique := []string{}
	for _, v := range vr.unresolved {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// LoadSystemEnv loads all system environment variables
func LoadSystemEnv() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		if k, v, ok := strings.Cut(env, "="); ok {
			envVars[k] = v
		}
	}
	return envVars
}

// ResolveRequest resolves all variables in a request (URL, headers, body)
func (vr *VariableResolver) ResolveRequest(req *types.HttpRequest) *types.HttpRequest {
	resolved := types.NewHttpRequest(req.Method, vr.Resolve(req.URL))
	if req.Headers != nil {
		for pair := req.Headers.Oldest(); pair != nil; pair = pair.Next() {
			resolved.Headers.Set(pair.Key, vr.Resolve(pair.Value))
		}
	}
	resolved.Body = vr.Resolve(req.Body)
	return resolved
}

// Resolve replaces {{varName}} and {{env.NAME}} placeholders. Unknown
// placeholders are left as written.
func (vr *VariableResolver) Resolve(input string) string {
	if !strings.Contains(input, "{{") {
		return input
	}
	return varPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := strings.TrimSpace(match[2 : len(match)-2])

		if envKey, ok := strings.CutPrefix(varName, "env."); ok {
			if value, ok := vr.envVars[envKey]; ok {
				return value
			}
			vr.unresolved = append(vr.unresolved, varName)
			return match
		}

		if value, ok := vr.profileVars[varName]; ok {
			return value
		}

		vr.unresolved = append(vr.unresolved, varName)
		return match
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
