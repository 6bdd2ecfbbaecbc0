// Package jsonschema derives JSON-schema values from Go types via
// reflection. It is used to describe tool parameters to LLM providers.
package jsonschema

import (
	"reflect"
	"strings"
)

// Schema is a JSON-schema-like value describing the expected shape of a
// tool's arguments or output. Only the subset needed for function calling is
// modeled.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
}

// Generate derives a Schema from the type parameter T. Struct fields map to
// object properties using their json tags; the `jsonschema` struct tag
// supports "description=...", "required", and repeated "enum=..." entries.
//
// Example:
//
//	type input struct {
//	    Path string `json:"path" jsonschema:"description=File path,required"`
//	}
//	schema := jsonschema.Generate[input]()
func Generate[T any]() *Schema {
	return fromType(reflect.TypeFor[T]())
}

func fromType(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Pointer:
		return fromType(t.Elem())

	case reflect.Struct:
		return fromStruct(t)

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: fromType(t.Elem())}

	case reflect.Map:
		return &Schema{Type: "object"}

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	default:
		// Interfaces and anything else degrade to an unconstrained value.
		return &Schema{}
	}
}

func fromStruct(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		if name == "-" {
			continue
		}

		fieldSchema := fromType(field.Type)
		applyTag(field.Tag.Get("jsonschema"), name, fieldSchema, schema)
		schema.Properties[name] = fieldSchema
	}

	return schema
}

// jsonFieldName resolves the property name from the json tag, falling back
// to the Go field name.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

// applyTag interprets the jsonschema struct tag on one field, mutating the
// field schema and recording required fields on the parent.
func applyTag(tag, name string, fieldSchema, parent *Schema) {
	if tag == "" {
		return
	}

	for _, part := range strings.Split(tag, ",") {
		switch {
		case part == "required":
			parent.Required = append(parent.Required, name)
		case strings.HasPrefix(part, "description="):
			fieldSchema.Description = strings.TrimPrefix(part, "description=")
		case strings.HasPrefix(part, "enum="):
			fieldSchema.Enum = append(fieldSchema.Enum, strings.TrimPrefix(part, "enum="))
		}
	}
}
