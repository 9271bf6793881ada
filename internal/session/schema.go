package session

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/studiowebux/blueline/internal/types"
)

// ProfilesSchema returns the JSON schema of a profiles file.
func ProfilesSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect([]types.Profile{})
	schema.Title = "blueline profiles"
	return json.MarshalIndent(schema, "", "  ")
}
