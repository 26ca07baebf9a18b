// Package classjson walks a parsed classfile.ClassFile and renders it as
// the human-oriented JSON document described by the package's design: for
// every index field, a sibling "<field>_deref" carries the recursively
// serialized entry that index refers to, so a reader never has to
// cross-reference the constant pool by hand.
package classjson

import (
	"bytes"
	"encoding/json"
)

// field is one (key, value) pair of an object, kept in insertion order.
type field struct {
	key   string
	value interface{}
}

// object is a JSON object that marshals its fields in the order they were
// added, rather than the alphabetical or random order a plain Go map
// would produce. The output shape in the package design is contractually
// ordered (magic before minorVersion before constantPool, and so on), so
// an ordinary map[string]interface{} cannot serve as the wire type.
type object []field

// set appends key/value and returns the updated object, so construction
// reads as a chain of o.set(...).set(...) calls mirroring the fixed field
// order described in the package design.
func (o object) set(key string, value interface{}) object {
	return append(o, field{key, value})
}

// MarshalJSON implements json.Marshaler, writing fields in insertion
// order.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
