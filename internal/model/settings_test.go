package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	for _, section := range []string{"notifications", "privacy", "appearance", "security"} {
		assert.Contains(t, settings, section)
	}

	appearance, ok := settings["appearance"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", appearance["theme"])

	// Mutating one copy must not leak into the next.
	appearance["theme"] = "dark"
	fresh, ok := DefaultSettings()["appearance"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", fresh["theme"])
}
