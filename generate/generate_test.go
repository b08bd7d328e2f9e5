package generate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/bakery/generate"
	"github.com/syssam/bakery/schema"
)

func TestNewRegistryCoversAllTypes(t *testing.T) {
	t.Parallel()

	reg := generate.NewRegistry()
	for typ := schema.TypeBool; typ <= schema.TypePoint; typ++ {
		_, ok := reg.Resolve(typ)
		assert.True(t, ok, "no builtin generator for %s", typ)
	}
}

func TestEmptyRegistry(t *testing.T) {
	t.Parallel()

	reg := generate.Empty()
	_, ok := reg.Resolve(schema.TypeString)
	assert.False(t, ok)
	assert.Empty(t, reg.Types())
}

func TestRegisterLastWins(t *testing.T) {
	t.Parallel()

	reg := generate.Empty()
	reg.Register(schema.TypeString, func(*schema.Field) (any, error) { return "first", nil })
	reg.Register(schema.TypeString, func(*schema.Field) (any, error) { return "second", nil })

	fn, ok := reg.Resolve(schema.TypeString)
	require.True(t, ok)
	v, err := fn(&schema.Field{Name: "s", Type: schema.TypeString})
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestCloneIsIsolated(t *testing.T) {
	t.Parallel()

	reg := generate.NewRegistry()
	clone := reg.Clone()
	clone.Register(schema.TypeString, func(*schema.Field) (any, error) { return "cloned", nil })

	fn, ok := reg.Resolve(schema.TypeString)
	require.True(t, ok)
	v, err := fn(&schema.Field{Name: "s", Type: schema.TypeString})
	require.NoError(t, err)
	assert.NotEqual(t, "cloned", v)

	fn, ok = clone.Resolve(schema.TypeString)
	require.True(t, ok)
	v, err = fn(&schema.Field{Name: "s", Type: schema.TypeString})
	require.NoError(t, err)
	assert.Equal(t, "cloned", v)
}

func TestTypesSorted(t *testing.T) {
	t.Parallel()

	reg := generate.Empty()
	reg.Register(schema.TypeUUID, func(*schema.Field) (any, error) { return nil, nil })
	reg.Register(schema.TypeBool, func(*schema.Field) (any, error) { return nil, nil })
	reg.Register(schema.TypeEmail, func(*schema.Field) (any, error) { return nil, nil })

	assert.Equal(t, []schema.Type{schema.TypeBool, schema.TypeEmail, schema.TypeUUID}, reg.Types())
}
