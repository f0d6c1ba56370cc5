package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) Registry[string] {
	t.Helper()
	r := NewRegistry[string]()
	require.NoError(t, r.Register("web_search", "ws", Metadata{Category: "web", Tags: []string{"search", "tavily"}, Description: "Search the web"}))
	require.NoError(t, r.Register("scientific_calculator", "calc", Metadata{Category: "math", Tags: []string{"math", "complex"}}))
	require.NoError(t, r.Register("roll_dice", "dice", Metadata{Category: "math", Tags: []string{"random"}}))
	return r
}

func names(entries []RegistryEntry[string]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Metadata.Name
	}
	return out
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRegistry(t)

	assert.EqualError(t, r.Register("", "x", Metadata{}), "component name cannot be empty")
	assert.EqualError(t, r.Register("roll_dice", "x", Metadata{}), "component 'roll_dice' is already registered")
	assert.EqualError(t, r.Register("a", "x", Metadata{Name: "b"}), "metadata name 'b' does not match registration name 'a'")
}

func TestListingIsOrdered(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, []string{"roll_dice", "scientific_calculator", "web_search"}, names(r.List()))
	assert.Equal(t, []string{"roll_dice", "scientific_calculator"}, names(r.ListByCategory("MATH")))
	assert.Equal(t, []string{"web_search"}, names(r.ListByTags("search", "Tavily")))
	assert.Equal(t, []string{"web_search"}, names(r.Search("the web")))
	assert.Len(t, r.Search(""), 3)
	assert.Equal(t, []string{"math", "web"}, r.Categories())
}

func TestGetUnregisterClear(t *testing.T) {
	r := newTestRegistry(t)

	v, ok := r.Get("roll_dice")
	assert.True(t, ok)
	assert.Equal(t, "dice", v)
	assert.Panics(t, func() { r.MustGet("missing") })

	assert.True(t, r.Unregister("roll_dice"))
	assert.False(t, r.Unregister("roll_dice"))
	assert.Equal(t, 2, r.Len())

	r.Clear()
	assert.Equal(t, 0, r.Len())
}
