package bakery_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/bakery"
	"github.com/syssam/bakery/store/memstore"
)

func TestInstanceGetSet(t *testing.T) {
	t.Parallel()

	f := bakery.New()
	inst, err := f.Prepare(context.Background(), userModel())
	require.NoError(t, err)

	require.NoError(t, inst.Set("nickname", "nick"))
	v, ok := inst.Get("nickname")
	require.True(t, ok)
	assert.Equal(t, "nick", v)

	err = inst.Set("ghost", 1)
	require.Error(t, err)
	assert.True(t, bakery.IsUnknownField(err))
}

func TestInstanceValuesIsACopy(t *testing.T) {
	t.Parallel()

	f := bakery.New()
	inst, err := f.Prepare(context.Background(), userModel())
	require.NoError(t, err)

	values := inst.Values()
	values["name"] = "mutated"

	v, _ := inst.Get("name")
	assert.NotEqual(t, "mutated", v)
}

func TestInstanceExport(t *testing.T) {
	t.Parallel()

	_, _, post := blogModels()
	ms := memstore.New()
	f := bakery.New(bakery.WithDefaultStore(ms))

	inst, err := f.Make(context.Background(), post)
	require.NoError(t, err)

	out := inst.Export()
	assert.Equal(t, inst.ID(), out["id"])
	assert.Contains(t, out, "title")

	author, ok := out["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, inst.Related("author").ID(), author["id"])
}

func TestInstanceMarshalJSON(t *testing.T) {
	t.Parallel()

	f := bakery.New()
	inst, err := f.Prepare(context.Background(), userModel(), bakery.WithValue("name", "amber"))
	require.NoError(t, err)

	data, err := json.Marshal(inst)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "amber", out["name"])
	// Unsaved instances carry no identity.
	assert.NotContains(t, out, "id")
}

func TestInstanceModel(t *testing.T) {
	t.Parallel()

	m := userModel()
	f := bakery.New()
	inst, err := f.Prepare(context.Background(), m)
	require.NoError(t, err)
	assert.Same(t, m, inst.Model())
}
