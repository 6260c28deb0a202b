package generator

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the structured prompt schema
const SchemaID = "https://github.com/dpshade/luma/structured-prompt.json"

// Schema returns the JSON Schema describing the machine-optimized form
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&StructuredPrompt{})
	schema.ID = SchemaID
	schema.Title = "LUMA structured prompt"

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}
