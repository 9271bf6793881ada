package types

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HttpRequest is the request described by the Request pane. Headers keep the
// order in which they were written.
type HttpRequest struct {
	Method  string                                 `json:"method"`
	URL     string                                 `json:"url"`
	Headers *orderedmap.OrderedMap[string, string] `json:"headers,omitempty"`
	Body    string                                 `json:"body,omitempty"`
}

// NewHttpRequest returns a request with an empty header map.
func NewHttpRequest(method, url string) *HttpRequest {
	return &HttpRequest{
		Method:  method,
		URL:     url,
		Headers: orderedmap.New[string, string](),
	}
}

// HeaderList returns headers as "Name: value" lines in insertion order.
func (r *HttpRequest) HeaderList() []string {
	if r.Headers == nil {
		return nil
	}
	out := make([]string, 0, r.Headers.Len())
	for pair := r.Headers.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key+": "+pair.Value)
	}
	return out
}

// Session is the persisted state shared between runs.
type Session struct {
	ActiveProfile string `json:"activeProfile,omitempty"`
}

// Profile supplies the base URL, default headers and transport settings for
// request execution.
type Profile struct {
	Name               string            `json:"name" yaml:"name" jsonschema:"required,description=Profile name used with --profile and :profile"`
	BaseURL            string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty" jsonschema:"description=Prefix for relative request URLs"`
	Headers            map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" jsonschema:"description=Default headers; request headers override them"`
	Variables          map[string]string `json:"variables,omitempty" yaml:"variables,omitempty" jsonschema:"description=Values for {{name}} placeholders"`
	TimeoutSeconds     int               `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty" jsonschema:"minimum=0,description=Request timeout (default 30)"`
	InsecureSkipVerify bool              `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify,omitempty"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" jsonschema:"description=socks5:// or http:// proxy URL"`
	OAuth              *OAuthConfig      `json:"oauth,omitempty" yaml:"oauth,omitempty"`
}

// OAuthConfig configures the OAuth 2.0 client-credentials flow.
type OAuthConfig struct {
	TokenURL     string   `json:"tokenUrl" yaml:"tokenUrl" jsonschema:"required"`
	ClientID     string   `json:"clientId" yaml:"clientId" jsonschema:"required"`
	ClientSecret string   `json:"clientSecret" yaml:"clientSecret"`
	Scopes       []string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
}

// RequestResult contains the HTTP response data. Transport failures set
// Error and leave Status at zero.
type RequestResult struct {
	Status       int               `json:"status"`
	StatusText   string            `json:"statusText"`
	Headers      map[string]string `json:"headers"`
	Body         string            `json:"body"`
	Duration     int64             `json:"duration"`     // milliseconds
	RequestSize  int               `json:"requestSize"`  // bytes
	ResponseSize int               `json:"responseSize"` // bytes
	Error        string            `json:"error,omitempty"`
}

// SortedHeaderNames returns the response header names in sorted order.
func (r *RequestResult) SortedHeaderNames() []string {
	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// HistoryEntry represents a saved request/response pair
type HistoryEntry struct {
	ID                 int64             `json:"id"`
	Timestamp          string            `json:"timestamp"`
	RequestID          string            `json:"requestId"`
	Profile            string            `json:"profile,omitempty"`
	Method             string            `json:"method"`
	URL                string            `json:"url"`
	Headers            map[string]string `json:"headers"`
	Body               string            `json:"body,omitempty"`
	ResponseStatus     int               `json:"responseStatus"`
	ResponseStatusText string            `json:"responseStatusText"`
	ResponseHeaders    map[string]string `json:"responseHeaders"`
	ResponseBody       string            `json:"responseBody"`
	Duration           int64             `json:"duration"`
	Error              string            `json:"error,omitempty"`
}
