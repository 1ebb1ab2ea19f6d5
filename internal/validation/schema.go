// Package validation compiles component props schemas and validates the
// props produced by the converter against them.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-richtext/internal/values"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue is a single failed constraint.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError lists every failed constraint of a payload.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from err.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Schema is a compiled props schema.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile normalises and compiles schema. An empty schema yields a nil
// *Schema, which accepts every payload.
func Compile(schema map[string]any) (*Schema, error) {
	normalized := NormalizeSchema(schema)
	if normalized == nil {
		return nil, nil
	}
	compiled, err := compileSchema(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Schema{compiled: compiled}, nil
}

// Validate checks payload, returning a *PayloadValidationError on failure.
func (s *Schema) Validate(payload map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := s.compiled.Validate(toJSONValue(payload)); err != nil {
		return &PayloadValidationError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// ValidateSchema reports whether schema compiles.
func ValidateSchema(schema map[string]any) error {
	_, err := Compile(schema)
	return err
}

// ValidatePayload compiles schema and validates payload against it.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	compiled, err := Compile(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return compiled.Validate(payload)
}

// NormalizeSchema returns a JSON schema for schema. Plain JSON schemas are
// cloned; the shorthand {"fields": [{"name", "type", "required"}]} is
// expanded into an object schema that rejects unknown properties.
func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return nil
	}
	if isJSONSchema(schema) {
		return values.CloneMap(schema)
	}
	fields, ok := schema["fields"].([]any)
	if !ok {
		return nil
	}

	properties := make(map[string]any, len(fields))
	required := make([]any, 0)
	for _, entry := range fields {
		field, ok := entry.(map[string]any)
		if !ok {
			if name, isName := entry.(string); isName {
				field = map[string]any{"name": name}
			} else {
				continue
			}
		}
		name, _ := field["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		property := map[string]any{}
		if nested, ok := field["schema"].(map[string]any); ok {
			property = values.CloneMap(nested)
		} else if fieldType, ok := field["type"].(string); ok {
			if jsonType := normalizeJSONType(fieldType); jsonType != "" {
				property["type"] = jsonType
			}
		}
		properties[name] = property
		if flag, _ := field["required"].(bool); flag {
			required = append(required, name)
		}
	}
	if len(properties) == 0 {
		return nil
	}

	normalized := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if allowed, ok := schema["additionalProperties"].(bool); ok {
		normalized["additionalProperties"] = allowed
	}
	if len(required) > 0 {
		normalized["required"] = required
	}
	return normalized
}

func isJSONSchema(schema map[string]any) bool {
	for _, key := range []string{"$schema", "type", "properties", "oneOf", "anyOf", "allOf"} {
		if _, ok := schema[key]; ok {
			return true
		}
	}
	return false
}

func normalizeJSONType(value string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(value)); normalized {
	case "string", "number", "integer", "boolean", "object", "array", "null":
		return normalized
	default:
		return ""
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// toJSONValue round-trips payload through encoding/json so Go numeric types
// reach the validator as json.Number.
func toJSONValue(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return payload
	}
	return out
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	var issues []ValidationIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
