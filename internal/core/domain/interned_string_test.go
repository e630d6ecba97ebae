package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("Core")
	b := domain.NewInternedString("Core")

	assert.Equal(t, a, b)
	assert.Equal(t, "Core", a.String())
	assert.False(t, a.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestInternedStringJSON(t *testing.T) {
	type wrapper struct {
		Names map[domain.InternedString]string `json:"names"`
	}

	in := wrapper{Names: map[domain.InternedString]string{
		domain.NewInternedString("Core"): "static_library",
	}}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"names":{"Core":"static_library"}}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "static_library", out.Names[domain.NewInternedString("Core")])
}

func TestSortInterned(t *testing.T) {
	names := domain.NewInternedStrings([]string{"Render", "Core", "Audio"})
	domain.SortInterned(names)

	got := make([]string, len(names))
	for i, n := range names {
		got[i] = n.String()
	}
	assert.Equal(t, []string{"Audio", "Core", "Render"}, got)
}
