package capability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvocation(t *testing.T) {
	a := NewInvocation("s", nil)
	b := NewInvocation("s", nil)

	assert.Equal(t, "s", a.SessionID())
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())

	_, ok := a.Lookup("ANYTHING")
	assert.False(t, ok)
}

func TestInvocationRequire(t *testing.T) {
	inv := NewInvocation("s", MapEnv{"SET": "value", "BLANK": ""})

	v, err := inv.Require("SET")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	for _, key := range []string{"BLANK", "UNSET"} {
		_, err := inv.Require(key)
		var missing *MissingConfigError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, key, missing.Key)
	}
}

func TestLayered(t *testing.T) {
	env := Layered(
		MapEnv{"A": "first", "EMPTY": ""},
		nil,
		MapEnv{"A": "second", "B": "second", "EMPTY": "filled"},
	)

	v, ok := env.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = env.Lookup("B")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	v, ok = env.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "filled", v)

	_, ok = env.Lookup("NONE")
	assert.False(t, ok)
}

func TestOSEnv(t *testing.T) {
	t.Setenv("MENAGERIE_TEST_KEY", "from-os")

	v, ok := OSEnv{}.Lookup("MENAGERIE_TEST_KEY")
	assert.True(t, ok)
	assert.Equal(t, "from-os", v)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.env")
	local := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(base, []byte("OPENAI_API_KEY=sk-base\nMENAGERIE_DOTENV_OTHER=1\n"), 0o600))
	require.NoError(t, os.WriteFile(local, []byte("OPENAI_API_KEY=sk-local\n"), 0o600))

	env, err := LoadDotEnv(base, local)
	require.NoError(t, err)
	assert.Equal(t, MapEnv{"OPENAI_API_KEY": "sk-local", "MENAGERIE_DOTENV_OTHER": "1"}, env)

	_, ok := os.LookupEnv("MENAGERIE_DOTENV_OTHER")
	assert.False(t, ok, "process environment is untouched")

	_, err = LoadDotEnv(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
