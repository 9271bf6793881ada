package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/studiowebux/blueline/internal/types"
)

var (
	// ErrEmptyRequest is returned when the Request pane holds no request line.
	ErrEmptyRequest = errors.New("no request to execute")
	// ErrInvalidRequestLine is returned when the first line is not METHOD URL.
	ErrInvalidRequestLine = errors.New("invalid request format, use: METHOD URL")

	// Header line: RFC 7230 token, colon, value
	headerPattern = regexp.MustCompile("^([A-Za-z0-9!#$%&'*+.^_`|~-]+):[ \t]*(.*)$")

	validMethods = map[string]bool{
		"GET": true, "POST": true, "PUT": true, "DELETE": true,
		"PATCH": true, "HEAD": true, "OPTIONS": true,
	}
)

// ParseRequest parses Request pane text:
//
//	METHOD URL
//	Header-Name: value      (optional, until a blank or non-header line)
//	                        (optional blank line)
//	body...
//
// Leading blank lines are ignored.
func ParseRequest(text string) (*types.HttpRequest, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, ErrEmptyRequest
	}

	parts := strings.Fields(lines[0])
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRequestLine, lines[0])
	}
	method := strings.ToUpper(parts[0])
	if !validMethods[method] {
		return nil, fmt.Errorf("%w: unknown method %s", ErrInvalidRequestLine, parts[0])
	}

	req := types.NewHttpRequest(method, parts[1])

	i := 1
	for ; i < len(lines); i++ {
		m := headerPattern.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		req.Headers.Set(m[1], strings.TrimSpace(m[2]))
	}
	if i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i < len(lines) {
		req.Body = strings.TrimRight(strings.Join(lines[i:], "\n"), "\n")
	}
	return req, nil
}

// Prepare builds the request that is actually sent: variables resolved,
// profile headers merged as defaults and relative URLs joined to the
// profile base URL. The returned list names unresolved variables.
func Prepare(req *types.HttpRequest, profile *types.Profile, env map[string]string) (*types.HttpRequest, []string) {
	var vars map[string]string
	if profile != nil {
		vars = profile.Variables
	}
	vr := NewVariableResolver(vars, env)
	out := vr.ResolveRequest(req)

	if profile != nil {
		out.URL = JoinURL(profile.BaseURL, out.URL)
		merged := types.NewHttpRequest(out.Method, out.URL)
		for _, name := range sortedKeys(profile.Headers) {
			if _, overridden := lookupHeader(out, name); !overridden {
				merged.Headers.Set(name, vr.Resolve(profile.Headers[name]))
			}
		}
		for pair := out.Headers.Oldest(); pair != nil; pair = pair.Next() {
			merged.Headers.Set(pair.Key, pair.Value)
		}
		merged.Body = out.Body
		out = merged
	}
	return out, vr.GetUnresolvedVariables()
}

// JoinURL prefixes a relative URL with base. Absolute URLs are returned
// unchanged.
func JoinURL(base, u string) string {
	if base == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(u, "/")
}

// lookupHeader finds a header case-insensitively.
func lookupHeader(req *types.HttpRequest, name string) (string, bool) {
	for pair := req.Headers.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, name) {
			return pair.Value, true
		}
	}
	return "", false
}
