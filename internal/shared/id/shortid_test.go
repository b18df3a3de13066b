package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate(16)
	require.NoError(t, err)
	assert.Len(t, got, 16)
	assert.True(t, IsBase62(got))

	got, err = Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	name, err := FileName(PrefixRepairImage, now, ".PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "repair-1700000000123-"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	parts := strings.Split(strings.TrimSuffix(name, ".png"), "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], FileSuffixLength)
	assert.True(t, IsBase62(parts[2]))
}

func TestFileName_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		name, err := FileName(PrefixCompletionImage, now, ".jpg")
		require.NoError(t, err)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}
