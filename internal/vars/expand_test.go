package vars

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "instance-id", "i-100"))
	require.NoError(t, store.Set(ctx, "TARGET_ENV", "env-9"))

	t.Run("store value substituted", func(t *testing.T) {
		out, err := Expand(ctx, "destroy ${instance-id} now", StoreLookup(store))
		require.NoError(t, err)
		assert.Equal(t, "destroy i-100 now", out)
	})

	t.Run("store wins over environment", func(t *testing.T) {
		t.Setenv("TARGET_ENV", "env-from-env")

		out, err := Expand(ctx, "${TARGET_ENV}", StoreLookup(store), EnvLookup())
		require.NoError(t, err)
		assert.Equal(t, "env-9", out)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("BUILD_NUMBER", "42")

		out, err := Expand(ctx, "run-${BUILD_NUMBER}", StoreLookup(store), EnvLookup())
		require.NoError(t, err)
		assert.Equal(t, "run-42", out)
	})

	t.Run("unresolved placeholder kept verbatim", func(t *testing.T) {
		out, err := Expand(ctx, "echo ${NOT_SET_ANYWHERE}", StoreLookup(store), EnvLookup())
		require.NoError(t, err)
		assert.Equal(t, "echo ${NOT_SET_ANYWHERE}", out)
	})

	t.Run("no placeholders passes through", func(t *testing.T) {
		out, err := Expand(ctx, "plain text $HOME {braces}", StoreLookup(store))
		require.NoError(t, err)
		assert.Equal(t, "plain text $HOME {braces}", out)
	})

	t.Run("single pass, values not re-expanded", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "outer", "${inner}"))
		require.NoError(t, store.Set(ctx, "inner", "should not appear"))

		out, err := Expand(ctx, "${outer}", StoreLookup(store))
		require.NoError(t, err)
		assert.Equal(t, "${inner}", out)
	})
}

func TestExpand_LookupError(t *testing.T) {
	failing := func(_ context.Context, name string) (string, bool, error) {
		return "", false, fmt.Errorf("store unavailable")
	}

	_, err := Expand(context.Background(), "${instance-id}", failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error resolving ${instance-id}")
	assert.Contains(t, err.Error(), "store unavailable")
}
