package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

type searchOptions struct {
	Depth string `json:"depth,omitempty" enum:"basic,advanced" default:"basic"`
}

type params struct {
	Query      string        `json:"query" description:"What to search for" minLength:"1"`
	MaxResults int           `json:"max_results,omitempty" default:"5" minimum:"1" maximum:"20"`
	Threshold  float64       `json:"threshold,omitempty" default:"0.5"`
	Verbose    *bool         `json:"verbose"`
	Tags       []string      `json:"tags,omitempty"`
	Options    searchOptions `json:"options,omitempty"`
	Internal   string        `json:"-"`
	hidden     string
}

func TestFromStruct(t *testing.T) {
	s, err := FromStruct(&params{})
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"query"}, s.Required)
	assert.Len(t, s.Properties, 6)

	q := s.Properties["query"]
	assert.Equal(t, "string", q.Type)
	assert.Equal(t, "What to search for", q.Description)
	assert.Equal(t, 1, *q.MinLength)

	mr := s.Properties["max_results"]
	assert.Equal(t, "integer", mr.Type)
	assert.Equal(t, 5, mr.Default)
	assert.Equal(t, 1.0, *mr.Minimum)
	assert.Equal(t, 20.0, *mr.Maximum)

	assert.Equal(t, 0.5, s.Properties["threshold"].Default)
	assert.Equal(t, "boolean", s.Properties["verbose"].Type)
	assert.Equal(t, &domain.Property{Type: "string"}, s.Properties["tags"].Items)

	opts := s.Properties["options"]
	assert.Equal(t, "object", opts.Type)
	assert.Equal(t, []string{"basic", "advanced"}, opts.Properties["depth"].Enum)
	assert.Equal(t, "basic", opts.Properties["depth"].Default)
}

func TestGeneratedSchemaValidates(t *testing.T) {
	s := MustFromStruct(params{})

	assert.True(t, s.Validate(map[string]interface{}{"query": "go"}).Valid)

	res := s.Validate(map[string]interface{}{"max_results": float64(50)})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "missing required parameter 'query'")
}

func TestFromStructErrors(t *testing.T) {
	_, err := FromStruct("not a struct")
	assert.EqualError(t, err, "schema generation requires a struct, got string")

	_, err = FromStruct(struct {
		N int `json:"n" default:"many"`
	}{})
	assert.ErrorContains(t, err, `field N: default "many"`)

	_, err = FromStruct(struct {
		C chan int `json:"c"`
	}{})
	assert.ErrorContains(t, err, "unsupported kind chan")

	assert.Panics(t, func() { MustFromStruct(42) })
}
