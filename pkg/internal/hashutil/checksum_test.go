package hashutil

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeChecksum(t *testing.T) {
	tree := fstest.MapFS{
		"a/one.txt": {Data: []byte("one")},
		"two.txt":   {Data: []byte("two")},
	}

	sum, err := TreeChecksum(tree)
	require.NoError(t, err)
	assert.Contains(t, sum, "sha256:")
	assert.Len(t, sum, 71) // "sha256:" + 64 hex chars

	again, err := TreeChecksum(tree)
	require.NoError(t, err)
	assert.Equal(t, sum, again)

	tests := []struct {
		name string
		tree fstest.MapFS
	}{
		{"content change", fstest.MapFS{
			"a/one.txt": {Data: []byte("ONE")},
			"two.txt":   {Data: []byte("two")},
		}},
		{"rename", fstest.MapFS{
			"a/uno.txt": {Data: []byte("one")},
			"two.txt":   {Data: []byte("two")},
		}},
		{"extra file", fstest.MapFS{
			"a/one.txt": {Data: []byte("one")},
			"two.txt":   {Data: []byte("two")},
			"three.txt": {Data: []byte("")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := TreeChecksum(tt.tree)
			require.NoError(t, err)
			assert.NotEqual(t, sum, other)
		})
	}
}

func TestTreeChecksumEmpty(t *testing.T) {
	sum, err := TreeChecksum(fstest.MapFS{})
	require.NoError(t, err)
	assert.Len(t, sum, 71)
}
