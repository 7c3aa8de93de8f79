package validator

import (
	"encoding/json"
	"fmt"
)

// SchemaError is a fatal, structured validation failure. It mirrors the
// {type, message, path} object expected by downstream tooling.
type SchemaError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// NewSchemaError creates a SchemaError of type "error".
func NewSchemaError(message, path string) *SchemaError {
	return &SchemaError{Type: "error", Message: message, Path: path}
}

// UnknownEnum reports a value with no mapping in a closed table.
func UnknownEnum(value, path string) *SchemaError {
	return NewSchemaError(fmt.Sprintf("Unknown enum value %s.", value), path)
}

// MissingRequired reports an absent required field.
func MissingRequired(path string) *SchemaError {
	return NewSchemaError("Missing required field.", path)
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Path)
}

// JSON renders the error as a single-line JSON object.
func (e *SchemaError) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return e.Error()
	}

	return string(data)
}
