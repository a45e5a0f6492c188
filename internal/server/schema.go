package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const propertyInputSchema = "schemas/property-input.json"

func compilePropertySchema() (*jsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile(propertyInputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(propertyInputSchema, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", propertyInputSchema, err)
	}
	return compiler.Compile(propertyInputSchema)
}

// validateBody checks that body is JSON and matches schema.
func validateBody(schema *jsonschema.Schema, body []byte) error {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("request does not match the property schema: %w", err)
	}
	return nil
}
