package generate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"net"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/bakery/schema"
)

// alphabet is the character set used for random string values.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// words seeds textual generators. Values stay short and boring on
// purpose: fixtures should read as obviously fake.
var words = []string{
	"amber", "basil", "cedar", "delta", "ember",
	"fjord", "grove", "hazel", "indigo", "juniper",
	"krill", "lunar", "maple", "nimbus", "opal",
	"pine", "quartz", "raven", "sage", "tundra",
}

var titler = cases.Title(language.English)

// Point is the value produced for geometric point fields.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func word() string {
	return words[rand.IntN(len(words))]
}

func randString(f *schema.Field, size int) (string, error) {
	if f.Size > 0 && f.Size < size {
		size = f.Size
	}
	s, err := nanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate: field %q: %w", f.Name, err)
	}
	return s, nil
}

// builtins returns the default generator per field type.
func builtins() map[schema.Type]Func {
	return map[schema.Type]Func{
		schema.TypeBool: func(*schema.Field) (any, error) {
			return rand.IntN(2) == 0, nil
		},
		schema.TypeInt: func(*schema.Field) (any, error) {
			return int(rand.Int32N(math.MaxInt32)), nil
		},
		schema.TypeInt8: func(*schema.Field) (any, error) {
			return int8(rand.Int32N(math.MaxInt8)), nil
		},
		schema.TypeInt16: func(*schema.Field) (any, error) {
			return int16(rand.Int32N(math.MaxInt16)), nil
		},
		schema.TypeInt32: func(*schema.Field) (any, error) {
			return rand.Int32N(math.MaxInt32), nil
		},
		schema.TypeInt64: func(*schema.Field) (any, error) {
			return rand.Int64N(math.MaxInt64), nil
		},
		schema.TypeUint: func(*schema.Field) (any, error) {
			return uint(rand.Uint32()), nil
		},
		schema.TypeUint8: func(*schema.Field) (any, error) {
			return uint8(rand.Uint32N(math.MaxUint8 + 1)), nil
		},
		schema.TypeUint16: func(*schema.Field) (any, error) {
			return uint16(rand.Uint32N(math.MaxUint16 + 1)), nil
		},
		schema.TypeUint32: func(*schema.Field) (any, error) {
			return rand.Uint32(), nil
		},
		schema.TypeUint64: func(*schema.Field) (any, error) {
			return rand.Uint64(), nil
		},
		schema.TypeFloat32: func(*schema.Field) (any, error) {
			return rand.Float32() * 1000, nil
		},
		schema.TypeFloat64: func(*schema.Field) (any, error) {
			return rand.Float64() * 1000, nil
		},
		schema.TypeString: func(f *schema.Field) (any, error) {
			return randString(f, 12)
		},
		schema.TypeText: func(f *schema.Field) (any, error) {
			s := titler.String(word()) + " " + word() + " " + word() + "."
			if f.Size > 0 && len(s) > f.Size {
				s = s[:f.Size]
			}
			return s, nil
		},
		schema.TypeSlug: func(f *schema.Field) (any, error) {
			suffix, err := randString(f, 6)
			if err != nil {
				return nil, err
			}
			return word() + "-" + word() + "-" + suffix, nil
		},
		schema.TypeURL: func(f *schema.Field) (any, error) {
			s, err := randString(f, 8)
			if err != nil {
				return nil, err
			}
			return "https://example.org/" + s, nil
		},
		schema.TypeEmail: func(f *schema.Field) (any, error) {
			s, err := randString(f, 8)
			if err != nil {
				return nil, err
			}
			return s + "@example.com", nil
		},
		schema.TypeIP: func(*schema.Field) (any, error) {
			ip := net.IPv4(byte(rand.UintN(223)+1), byte(rand.UintN(256)), byte(rand.UintN(256)), byte(rand.UintN(254)+1))
			return ip.String(), nil
		},
		schema.TypeBytes: func(f *schema.Field) (any, error) {
			size := 16
			if f.Size > 0 && f.Size < size {
				size = f.Size
			}
			b := make([]byte, size)
			for i := range b {
				b[i] = byte(rand.UintN(256))
			}
			return b, nil
		},
		schema.TypeUUID: func(*schema.Field) (any, error) {
			return uuid.New(), nil
		},
		schema.TypeEnum: func(f *schema.Field) (any, error) {
			if len(f.Enums) == 0 {
				return nil, fmt.Errorf("generate: enum field %q has no values", f.Name)
			}
			return f.Enums[rand.IntN(len(f.Enums))], nil
		},
		schema.TypeTime: func(*schema.Field) (any, error) {
			return time.Now().UTC(), nil
		},
		schema.TypeDate: func(*schema.Field) (any, error) {
			return time.Now().UTC().Truncate(24 * time.Hour), nil
		},
		schema.TypeDuration: func(*schema.Field) (any, error) {
			return time.Duration(rand.Int64N(int64(24*time.Hour))) + time.Second, nil
		},
		schema.TypeJSON: func(*schema.Field) (any, error) {
			return map[string]any{word(): word()}, nil
		},
		schema.TypeStrings: func(*schema.Field) (any, error) {
			return []string{word(), word()}, nil
		},
		schema.TypeMap: func(*schema.Field) (any, error) {
			return map[string]any{word(): rand.IntN(100)}, nil
		},
		schema.TypeFile: func(f *schema.Field) (any, error) {
			s, err := randString(f, 8)
			if err != nil {
				return nil, err
			}
			return "files/" + s + ".txt", nil
		},
		schema.TypeImage: func(f *schema.Field) (any, error) {
			s, err := randString(f, 8)
			if err != nil {
				return nil, err
			}
			return "images/" + s + ".png", nil
		},
		schema.TypePoint: func(*schema.Field) (any, error) {
			return Point{
				X: rand.Float64()*360 - 180,
				Y: rand.Float64()*180 - 90,
			}, nil
		},
	}
}
