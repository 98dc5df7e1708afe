package datatable

import (
	"errors"
	"reflect"
)

// Ensure that TypeFormatters implements ValueFormatter
var _ ValueFormatter = new(TypeFormatters)

// TypeFormatters is a ValueFormatter cascade that selects
// a formatter by exact type, then by implemented interface type,
// then by reflect.Kind and finally uses Other if not nil.
//
// A nil *TypeFormatters is valid and supports no value.
type TypeFormatters struct {
	Types          map[reflect.Type]ValueFormatter
	InterfaceTypes map[reflect.Type]ValueFormatter
	Kinds          map[reflect.Kind]ValueFormatter
	Other          ValueFormatter
}

func (f *TypeFormatters) FormatValue(val reflect.Value) (string, bool, error) {
	if f == nil || !val.IsValid() {
		return "", false, errors.ErrUnsupported
	}
	if tf, ok := f.Types[val.Type()]; ok {
		str, raw, err := tf.FormatValue(val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	for it, itf := range f.InterfaceTypes {
		if val.Type().Implements(it) {
			str, raw, err := itf.FormatValue(val)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if kf, ok := f.Kinds[val.Kind()]; ok {
		str, raw, err := kf.FormatValue(val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	if f.Other != nil {
		return f.Other.FormatValue(val)
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatters) cloneOrNew() *TypeFormatters {
	if f == nil {
		return new(TypeFormatters)
	}
	c := &TypeFormatters{Other: f.Other}
	if len(f.Types) > 0 {
		c.Types = make(map[reflect.Type]ValueFormatter, len(f.Types))
		for key, val := range f.Types {
			c.Types[key] = val
		}
	}
	if len(f.InterfaceTypes) > 0 {
		c.InterfaceTypes = make(map[reflect.Type]ValueFormatter, len(f.InterfaceTypes))
		for key, val := range f.InterfaceTypes {
			c.InterfaceTypes[key] = val
		}
	}
	if len(f.Kinds) > 0 {
		c.Kinds = make(map[reflect.Kind]ValueFormatter, len(f.Kinds))
		for key, val := range f.Kinds {
			c.Kinds[key] = val
		}
	}
	return c
}

func (f *TypeFormatters) SetTypeFormatter(typ reflect.Type, fmt ValueFormatter) {
	if f.Types == nil {
		f.Types = make(map[reflect.Type]ValueFormatter)
	}
	f.Types[typ] = fmt
}

// WithTypeFormatter returns a copy of f with fmt registered for typ.
func (f *TypeFormatters) WithTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.SetTypeFormatter(typ, fmt)
	return mod
}

func (f *TypeFormatters) SetInterfaceTypeFormatter(typ reflect.Type, fmt ValueFormatter) {
	if f.InterfaceTypes == nil {
		f.InterfaceTypes = make(map[reflect.Type]ValueFormatter)
	}
	f.InterfaceTypes[typ] = fmt
}

// WithInterfaceTypeFormatter returns a copy of f with fmt registered
// for all types implementing the interface type typ.
func (f *TypeFormatters) WithInterfaceTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.SetInterfaceTypeFormatter(typ, fmt)
	return mod
}

func (f *TypeFormatters) SetKindFormatter(kind reflect.Kind, fmt ValueFormatter) {
	if f.Kinds == nil {
		f.Kinds = make(map[reflect.Kind]ValueFormatter)
	}
	f.Kinds[kind] = fmt
}

// WithKindFormatter returns a copy of f with fmt registered for kind.
func (f *TypeFormatters) WithKindFormatter(kind reflect.Kind, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.SetKindFormatter(kind, fmt)
	return mod
}

// WithOther returns a copy of f using fmt for all values
// not supported by the other formatters.
func (f *TypeFormatters) WithOther(fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.Other = fmt
	return mod
}
