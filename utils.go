package datatable

import (
	"reflect"
	"strings"
	"unicode"
)

// SpacePascalCase splits a PascalCase, camelCase or snake_case name
// into words separated by single spaces.
// Runs of upper case letters like "ID" stay one word.
func SpacePascalCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	var b strings.Builder
	for _, word := range words {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		prevUpper := true
		for _, r := range word {
			upper := unicode.IsUpper(r)
			if upper && !prevUpper {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			prevUpper = upper
		}
	}
	return b.String()
}

// ValueIsNil reports whether val holds no value:
// an invalid reflect.Value, a nil value of a nillable kind,
// or a value of the empty struct type.
func ValueIsNil(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return val.IsNil()
	case reflect.Struct:
		return val.NumField() == 0 && val.NumMethod() == 0
	}
	return false
}
