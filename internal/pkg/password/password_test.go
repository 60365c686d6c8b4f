package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := Hash("pw1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1234", hash)
	assert.True(t, Check(hash, "pw1234"))
	assert.False(t, Check(hash, "pw12345"))
	assert.False(t, Check("not-a-hash", "pw1234"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same")
	require.NoError(t, err)
	second, err := Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
