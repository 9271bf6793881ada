package executor

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	xproxy "golang.org/x/net/proxy"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/studiowebux/blueline/internal/logger"
	"github.com/studiowebux/blueline/internal/types"
)

// DefaultTimeout applies when a profile sets no timeout.
const DefaultTimeout = 30 * time.Second

// Execute performs an HTTP request and returns the result. Transport
// failures are reported in RequestResult.Error; the returned error is set
// only when the request could not be built.
func Execute(ctx context.Context, req *types.HttpRequest, profile *types.Profile) (*types.RequestResult, error) {
	var bodyReader io.Reader
	requestSize := 0
	if req.Body != "" {
		bodyReader = bytes.NewBufferString(req.Body)
		requestSize = len(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.Headers != nil {
		for pair := req.Headers.Oldest(); pair != nil; pair = pair.Next() {
			httpReq.Header.Set(pair.Key, pair.Value)
		}
	}

	client, err := buildHTTPClient(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	startTime := time.Now()
	resp, err := client.Do(httpReq)
	duration := time.Since(startTime).Milliseconds()

	log := logger.FromContext(ctx)
	if err != nil {
		log.Debug("transport failure", zap.Error(err), zap.Int64("duration_ms", duration))
		return &types.RequestResult{
			Error:       describeError(err),
			Duration:    duration,
			RequestSize: requestSize,
		}, nil
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	duration = time.Since(startTime).Milliseconds()
	if err != nil {
		return &types.RequestResult{
			Status:      resp.StatusCode,
			StatusText:  statusText(resp),
			Error:       fmt.Sprintf("failed to read response body: %v", err),
			Duration:    duration,
			RequestSize: requestSize,
		}, nil
	}

	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(bodyBytes)),
		zap.Int64("duration_ms", duration))

	headers := make(map[string]string)
	for key, values := range resp.Header {
		headers[key] = strings.Join(values, ", ")
	}

	return &types.RequestResult{
		Status:       resp.StatusCode,
		StatusText:   statusText(resp),
		Headers:      headers,
		Body:         string(bodyBytes),
		Duration:     duration,
		RequestSize:  requestSize,
		ResponseSize: len(bodyBytes),
	}, nil
}

// buildHTTPClient creates an HTTP client from the profile's timeout, TLS,
// proxy and OAuth settings.
func buildHTTPClient(ctx context.Context, profile *types.Profile) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	timeout := DefaultTimeout

	if profile != nil {
		if profile.TimeoutSeconds > 0 {
			timeout = time.Duration(profile.TimeoutSeconds) * time.Second
		}
		if profile.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		if profile.Proxy != "" {
			if err := configureProxy(transport, profile.Proxy, timeout); err != nil {
				return nil, err
			}
		}
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	if profile != nil && profile.OAuth != nil {
		cc := clientcredentials.Config{
			ClientID:     profile.OAuth.ClientID,
			ClientSecret: profile.OAuth.ClientSecret,
			TokenURL:     profile.OAuth.TokenURL,
			Scopes:       profile.OAuth.Scopes,
		}
		// Token requests go through the same transport.
		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout, Transport: transport})
		client = &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: cc.TokenSource(tokenCtx),
				Base:   transport,
			},
		}
	}

	return client, nil
}

// configureProxy routes the transport through a socks5:// or http(s):// proxy.
func configureProxy(transport *http.Transport, rawURL string, timeout time.Duration) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid proxy URL %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		var auth *xproxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &xproxy.Auth{User: u.User.Username(), Password: pass}
		}
		forward := &net.Dialer{Timeout: timeout}
		d, err := xproxy.SOCKS5("tcp", u.Host, auth, forward)
		if err != nil {
			return fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := d.(xproxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return d.Dial(network, addr)
			}
		}
	default:
		return fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return nil
}

// statusText strips the numeric code from resp.Status ("200 OK" -> "OK").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func describeError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	return err.Error()
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}
