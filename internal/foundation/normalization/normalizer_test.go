package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPolicy string

const (
	policyAbort testPolicy = "abort"
	policySkip  testPolicy = "skip"
)

func newPolicyNormalizer() *Normalizer[testPolicy] {
	return NewNormalizer(map[string]testPolicy{
		"abort": policyAbort,
		"SKIP":  policySkip,
	}, policyAbort)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newPolicyNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testPolicy
	}{
		{"exact match", "abort", policyAbort},
		{"case insensitive", "Skip", policySkip},
		{"with spaces", "  skip  ", policySkip},
		{"invalid input falls back", "retry", policyAbort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newPolicyNormalizer()

	got, err := n.NormalizeWithError("SKIP")
	require.NoError(t, err)
	assert.Equal(t, policySkip, got)

	got, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, policyAbort, got)

	_, err = n.NormalizeWithError("retry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[abort skip]")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newPolicyNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"abort", "skip"}, n.ValidKeys())
}
