package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Literal(t *testing.T) {
	v, err := Resolve("uk_live_abc123")
	require.NoError(t, err)
	assert.Equal(t, "uk_live_abc123", v)
}

func TestResolve_Env(t *testing.T) {
	t.Setenv("UPDATEKIT_TEST_KEY", "from-env")

	v, err := Resolve("env:UPDATEKIT_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
}

func TestResolve_EnvMissing(t *testing.T) {
	_, err := Resolve("env:UPDATEKIT_DEFINITELY_UNSET")
	assert.Error(t, err)
}

func TestResolve_EmptyIsLiteral(t *testing.T) {
	v, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, v)
}
