package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placement string

const (
	placementChild  placement = "child"
	placementFolder placement = "folder"
)

func newPlacementNormalizer() *Normalizer[placement] {
	return NewNormalizer(map[string]placement{
		"child":  placementChild,
		"folder": placementFolder,
	}, placementChild)
}

func TestNormalize(t *testing.T) {
	n := newPlacementNormalizer()

	tests := []struct {
		name     string
		input    string
		expected placement
	}{
		{"exact match", "folder", placementFolder},
		{"case insensitive", "FOLDER", placementFolder},
		{"with spaces", "  child  ", placementChild},
		{"invalid input falls back", "sideways", placementChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeWithError(t *testing.T) {
	n := newPlacementNormalizer()

	got, err := n.NormalizeWithError(" Folder ")
	require.NoError(t, err)
	assert.Equal(t, placementFolder, got)

	got, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, placementChild, got)

	_, err = n.NormalizeWithError("sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[child folder]")
}

func TestValidKeysReturnsCopy(t *testing.T) {
	n := newPlacementNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"child", "folder"}, n.ValidKeys())
}
