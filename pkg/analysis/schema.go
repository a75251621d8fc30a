package analysis

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed artifact-schema.json
var artifactSchemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(artifactSchemaJSON))
})

// validateDocument checks a decoded artifact against the embedded schema.
//
// Returns:
//   - []string: One entry per violation as "field: description"; empty when valid
//   - error: Schema compilation or validation failure
func validateDocument(doc any) ([]string, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile artifact schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}
	return violations, nil
}

// Schema returns the embedded JSON schema describing analysis artifacts.
func Schema() []byte {
	return artifactSchemaJSON
}
