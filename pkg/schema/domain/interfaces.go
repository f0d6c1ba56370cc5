package domain

// ABOUTME: JSON Schema types for tool parameter and output descriptions
// ABOUTME: Serialized as-is into MCP tool input schemas

// Schema represents an object schema for tool parameters or results.
type Schema struct {
	Type                 string              `json:"type" yaml:"type"`
	Properties           map[string]Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string            `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool               `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Description          string              `json:"description,omitempty" yaml:"description,omitempty"`
	Title                string              `json:"title,omitempty" yaml:"title,omitempty"`
}

// Property represents a single property in a schema.
type Property struct {
	Type        string              `json:"type" yaml:"type"`
	Format      string              `json:"format,omitempty" yaml:"format,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Default     interface{}         `json:"default,omitempty" yaml:"default,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength   *int                `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern     string              `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum        []string            `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *Property           `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ValidationResult represents the outcome of a validation.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Float returns a pointer to v, for Minimum and Maximum.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for MinLength and MaxLength.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for AdditionalProperties.
func Bool(v bool) *bool { return &v }
