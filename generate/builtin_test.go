package generate_test

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/bakery/generate"
	"github.com/syssam/bakery/schema"
)

func gen(t *testing.T, f *schema.Field) any {
	t.Helper()
	fn, ok := generate.NewRegistry().Resolve(f.Type)
	require.True(t, ok, "no generator for %s", f.Type)
	v, err := fn(f)
	require.NoError(t, err)
	return v
}

func TestBuiltinNumericTypes(t *testing.T) {
	t.Parallel()

	assert.IsType(t, false, gen(t, &schema.Field{Name: "f", Type: schema.TypeBool}))
	assert.IsType(t, int(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeInt}))
	assert.IsType(t, int8(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeInt8}))
	assert.IsType(t, int16(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeInt16}))
	assert.IsType(t, int32(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeInt32}))
	assert.IsType(t, int64(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeInt64}))
	assert.IsType(t, uint(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeUint}))
	assert.IsType(t, uint8(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeUint8}))
	assert.IsType(t, uint16(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeUint16}))
	assert.IsType(t, uint32(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeUint32}))
	assert.IsType(t, uint64(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeUint64}))
	assert.IsType(t, float32(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeFloat32}))
	assert.IsType(t, float64(0), gen(t, &schema.Field{Name: "f", Type: schema.TypeFloat64}))
}

func TestBuiltinString(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "name", Type: schema.TypeString})
	assert.Len(t, v.(string), 12)

	// Size caps generated length.
	v = gen(t, &schema.Field{Name: "code", Type: schema.TypeString, Size: 4})
	assert.Len(t, v.(string), 4)
}

func TestBuiltinEmail(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "email", Type: schema.TypeEmail})
	assert.True(t, strings.HasSuffix(v.(string), "@example.com"), "got %q", v)
}

func TestBuiltinURL(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "site", Type: schema.TypeURL})
	assert.True(t, strings.HasPrefix(v.(string), "https://"), "got %q", v)
}

func TestBuiltinSlug(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "slug", Type: schema.TypeSlug})
	assert.GreaterOrEqual(t, strings.Count(v.(string), "-"), 2, "got %q", v)
	assert.Equal(t, strings.ToLower(v.(string)), v.(string))
}

func TestBuiltinIP(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "addr", Type: schema.TypeIP})
	assert.NotNil(t, net.ParseIP(v.(string)), "got %q", v)
}

func TestBuiltinUUID(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "id", Type: schema.TypeUUID})
	id, ok := v.(uuid.UUID)
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestBuiltinEnum(t *testing.T) {
	t.Parallel()

	f := &schema.Field{Name: "status", Type: schema.TypeEnum, Enums: []string{"draft", "live"}}
	v := gen(t, f)
	assert.Contains(t, f.Enums, v)

	fn, ok := generate.NewRegistry().Resolve(schema.TypeEnum)
	require.True(t, ok)
	_, err := fn(&schema.Field{Name: "status", Type: schema.TypeEnum})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no values")
}

func TestBuiltinTimeFamilies(t *testing.T) {
	t.Parallel()

	v := gen(t, &schema.Field{Name: "at", Type: schema.TypeTime})
	assert.WithinDuration(t, time.Now().UTC(), v.(time.Time), time.Minute)

	v = gen(t, &schema.Field{Name: "on", Type: schema.TypeDate})
	day := v.(time.Time)
	assert.Equal(t, day, day.Truncate(24*time.Hour))

	v = gen(t, &schema.Field{Name: "for", Type: schema.TypeDuration})
	assert.Greater(t, v.(time.Duration), time.Duration(0))
}

func TestBuiltinStructured(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, gen(t, &schema.Field{Name: "f", Type: schema.TypeJSON}).(map[string]any))
	assert.Len(t, gen(t, &schema.Field{Name: "f", Type: schema.TypeStrings}).([]string), 2)
	assert.NotEmpty(t, gen(t, &schema.Field{Name: "f", Type: schema.TypeMap}).(map[string]any))
	assert.Len(t, gen(t, &schema.Field{Name: "f", Type: schema.TypeBytes}).([]byte), 16)
}

func TestBuiltinFileAndImage(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasSuffix(gen(t, &schema.Field{Name: "f", Type: schema.TypeFile}).(string), ".txt"))
	assert.True(t, strings.HasSuffix(gen(t, &schema.Field{Name: "f", Type: schema.TypeImage}).(string), ".png"))
}

func TestBuiltinPoint(t *testing.T) {
	t.Parallel()

	p := gen(t, &schema.Field{Name: "loc", Type: schema.TypePoint}).(generate.Point)
	assert.GreaterOrEqual(t, p.X, -180.0)
	assert.LessOrEqual(t, p.X, 180.0)
	assert.GreaterOrEqual(t, p.Y, -90.0)
	assert.LessOrEqual(t, p.Y, 90.0)
}
