package schema

import (
	"encoding/json"
	"fmt"
)

// A Type is the semantic type tag of a field. It selects which generator
// produces values for the field and how defaults are decoded.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeText
	TypeSlug
	TypeURL
	TypeEmail
	TypeIP
	TypeBytes
	TypeUUID
	TypeEnum
	TypeTime
	TypeDate
	TypeDuration
	TypeJSON
	TypeStrings
	TypeMap
	TypeFile
	TypeImage
	TypePoint
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeBool:     "bool",
	TypeInt:      "int",
	TypeInt8:     "int8",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeUint:     "uint",
	TypeUint8:    "uint8",
	TypeUint16:   "uint16",
	TypeUint32:   "uint32",
	TypeUint64:   "uint64",
	TypeFloat32:  "float32",
	TypeFloat64:  "float64",
	TypeString:   "string",
	TypeText:     "text",
	TypeSlug:     "slug",
	TypeURL:      "url",
	TypeEmail:    "email",
	TypeIP:       "ip",
	TypeBytes:    "bytes",
	TypeUUID:     "uuid",
	TypeEnum:     "enum",
	TypeTime:     "time",
	TypeDate:     "date",
	TypeDuration: "duration",
	TypeJSON:     "json",
	TypeStrings:  "strings",
	TypeMap:      "map",
	TypeFile:     "file",
	TypeImage:    "image",
	TypePoint:    "point",
}

// String returns the name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports if the given type is a registered field type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt && t <= TypeFloat64
}

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool {
	return t >= TypeInt && t <= TypeUint64
}

// Textual reports if the given type is backed by a string value.
func (t Type) Textual() bool {
	switch t {
	case TypeString, TypeText, TypeSlug, TypeURL, TypeEmail, TypeIP, TypeEnum, TypeFile, TypeImage:
		return true
	}
	return false
}

// MarshalJSON encodes the type by its name.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the type from its name.
func (t *Type) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	typ, err := TypeByName(name)
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// TypeByName returns the type with the given name, or an error if the
// name does not denote a known type.
func TypeByName(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name && Type(t).Valid() {
			return Type(t), nil
		}
	}
	return TypeInvalid, fmt.Errorf("schema: unknown field type %q", name)
}
