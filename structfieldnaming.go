package datatable

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// KeyNaming defines how a column key is matched
// against the fields of a struct row.
//
// nil is a valid value for *KeyNaming
// and matches keys against the Go field names only.
type KeyNaming struct {
	// Tags are the struct field tags checked in order
	// for a name that equals the column key.
	Tags []string
	// Ignore is a tag value that excludes a field from lookups.
	Ignore string
}

// DefaultKeyNaming matches column keys against the `json` tag,
// then the `col` tag and finally the Go field name.
// Fields tagged with "-" are never matched.
var DefaultKeyNaming = &KeyNaming{
	Tags:   []string{"json", "col"},
	Ignore: "-",
}

// String implements the fmt.Stringer interface for KeyNaming.
func (n *KeyNaming) String() string {
	if n == nil {
		return `KeyNaming{Tags: [], Ignore: ""}`
	}
	return fmt.Sprintf("KeyNaming{Tags: %#v, Ignore: %#v}", n.Tags, n.Ignore)
}

// FieldKeys returns the keys a struct field can be looked up by.
// The returned slice is empty if the field is ignored.
func (n *KeyNaming) FieldKeys(field reflect.StructField) (keys []string) {
	if n == nil {
		return []string{field.Name}
	}
	for _, tagName := range n.Tags {
		tag, ok := field.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		if i := strings.IndexByte(tag, ','); i != -1 {
			tag = tag[:i]
		}
		if n.Ignore != "" && tag == n.Ignore {
			return nil
		}
		if tag != "" {
			keys = append(keys, tag)
		}
	}
	return append(keys, field.Name)
}

// LookupKey returns the value of row for key.
//
// Maps with a string key type are indexed by key,
// structs are searched using n.FieldKeys including the fields
// of anonymously embedded structs. Pointers and interfaces are
// dereferenced. An invalid reflect.Value is returned for nil rows
// and keys that don't exist, never an error.
func (n *KeyNaming) LookupKey(row any, key string) reflect.Value {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}
		}
		val := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if val.Kind() == reflect.Interface && !val.IsNil() {
			val = val.Elem()
		}
		return val
	case reflect.Struct:
		return n.structFieldValue(v, key)
	}
	return reflect.Value{}
}

// structFieldValue returns the first exported field of strct
// with a key from n.FieldKeys matching key.
// Fields of anonymously embedded structs are searched in place.
func (n *KeyNaming) structFieldValue(strct reflect.Value, key string) reflect.Value {
	for i := range strct.NumField() {
		field := strct.Type().Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if val := n.structFieldValue(strct.Field(i), key); val.IsValid() {
				return val
			}
			continue
		}
		if field.IsExported() && slices.Contains(n.FieldKeys(field), key) {
			return strct.Field(i)
		}
	}
	return reflect.Value{}
}
