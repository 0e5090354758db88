package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

var reflector = jsonschema.Reflector{
	DoNotReference:             true,
	ExpandedStruct:             true,
	AllowAdditionalProperties:  true,
	RequiredFromJSONSchemaTags: true,
}

// SchemaOf reflects a component schema from the JSON shape of T.
func SchemaOf[T any]() (*Schema, error) {
	var v T
	raw, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("marshal reflected schema: %w", err)
	}

	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode reflected schema: %w", err)
	}
	return &s, nil
}

// MustSchemaOf is SchemaOf for package-level schema tables. It panics on error.
func MustSchemaOf[T any]() *Schema {
	s, err := SchemaOf[T]()
	if err != nil {
		panic(err)
	}
	return s
}
