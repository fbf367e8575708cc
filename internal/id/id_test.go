package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, prefix := range []string{"sub", "surface", "feed", "sse"} {
		got, err := Generate(prefix)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(got, prefix+"-"))
		assert.Len(t, got, len(prefix)+1+21)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got := MustGenerate("sse")
		assert.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}
