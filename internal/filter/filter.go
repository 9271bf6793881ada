package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/studiowebux/blueline/internal/types"
)

// Apply applies a JMESPath expression to a JSON body. An empty expression
// returns the body unchanged.
func Apply(body string, expression string) (string, error) {
	if strings.TrimSpace(expression) == "" {
		return body, nil
	}
	return applyJMESPath(body, expression)
}

// applyJMESPath applies a JMESPath expression to a JSON string
func applyJMESPath(jsonStr string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}
	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

// IsJSON reports whether body is a JSON document.
func IsJSON(body string) bool {
	trimmed := strings.TrimSpace(body)
	return trimmed != "" && gjson.Valid(trimmed)
}

// Pretty indents JSON bodies with two spaces. Other bodies are returned
// unchanged.
func Pretty(body string) string {
	if !IsJSON(body) {
		return body
	}
	out := pretty.PrettyOptions([]byte(strings.TrimSpace(body)), &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: false,
	})
	return strings.TrimRight(string(out), "\n")
}

// FormatResponse renders a result as Response pane text:
//
//	HTTP 200 OK
//	Content-Type: application/json
//
//	{ ...pretty body... }
//
// Transport failures render as "Error: <message>". A non-empty expression
// is applied to JSON bodies; if it fails the error is shown above the raw
// body.
func FormatResponse(result *types.RequestResult, expression string) string {
	if result == nil {
		return ""
	}
	if result.Error != "" {
		return "Error: " + result.Error
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("HTTP %d", result.Status))
	if result.StatusText != "" {
		sb.WriteString(" " + result.StatusText)
	}
	sb.WriteString("\n")
	for _, name := range result.SortedHeaderNames() {
		sb.WriteString(name + ": " + result.Headers[name] + "\n")
	}

	body := result.Body
	if expression != "" && IsJSON(body) {
		filtered, err := Apply(body, expression)
		if err != nil {
			sb.WriteString("\nFilter error: " + err.Error() + "\n")
		} else {
			body = filtered
		}
	}
	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(Pretty(body))
	}
	return strings.TrimRight(sb.String(), "\n")
}
