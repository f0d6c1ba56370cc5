package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func diceSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]Property{
			"notation":  {Type: "string", MinLength: Int(1)},
			"num_rolls": {Type: "integer", Minimum: Float(1), Maximum: Float(100)},
			"level":     {Type: "string", Enum: []string{"L", "M", "Q", "H"}},
		},
		Required:             []string{"notation"},
		AdditionalProperties: Bool(false),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]interface{}
		errors []string
	}{
		{"valid", map[string]interface{}{"notation": "2d6", "num_rolls": float64(3)}, nil},
		{"missing required", map[string]interface{}{}, []string{"missing required parameter 'notation'"}},
		{"wrong type", map[string]interface{}{"notation": 2.0}, []string{"parameter 'notation' must be a string"}},
		{"fractional integer", map[string]interface{}{"notation": "d6", "num_rolls": 1.5}, []string{"parameter 'num_rolls' must be an integer"}},
		{"out of range", map[string]interface{}{"notation": "d6", "num_rolls": 101.0}, []string{"parameter 'num_rolls' must be <= 100"}},
		{"enum", map[string]interface{}{"notation": "d6", "level": "X"}, []string{"parameter 'level' must be one of [L M Q H]"}},
		{"unknown", map[string]interface{}{"notation": "d6", "extra": true}, []string{"unknown parameter 'extra'"}},
		{"too short", map[string]interface{}{"notation": ""}, []string{"parameter 'notation' must be at least 1 characters"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := diceSchema().Validate(tt.args)
			assert.Equal(t, len(tt.errors) == 0, result.Valid)
			assert.Equal(t, tt.errors, result.Errors)
		})
	}
}

func TestValidateNilSchema(t *testing.T) {
	var s *Schema
	assert.True(t, s.Validate(map[string]interface{}{"x": 1}).Valid)
}
