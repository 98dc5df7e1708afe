package datatable

import (
	"errors"
	"fmt"
	"reflect"
)

// ValueFormatter formats a value looked up by a column key
// as cell content.
//
// Implementations return errors.ErrUnsupported if they
// don't handle the passed value so that the next formatter
// of a cascade like TypeFormatters can be tried.
// The raw result indicates if the returned string is
// already HTML and must not be escaped.
type ValueFormatter interface {
	FormatValue(val reflect.Value) (str string, raw bool, err error)
}

// ValueFormatterFunc implements ValueFormatter for a function.
type ValueFormatterFunc func(val reflect.Value) (str string, raw bool, err error)

func (f ValueFormatterFunc) FormatValue(val reflect.Value) (str string, raw bool, err error) {
	return f(val)
}

// SprintFormatter formats any value using fmt.Sprint.
// If Raw is true, then the result is marked as HTML.
type SprintFormatter struct {
	Raw bool
}

func (f SprintFormatter) FormatValue(val reflect.Value) (string, bool, error) {
	return fmt.Sprint(val.Interface()), f.Raw, nil
}

// PrintfFormatter implements ValueFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfFormatter string

func (format PrintfFormatter) FormatValue(val reflect.Value) (string, bool, error) {
	return fmt.Sprintf(string(format), val.Interface()), false, nil
}

// UnsupportedFormatter always returns errors.ErrUnsupported.
// It can be registered to force the fallback formatting
// for a type further down a cascade.
type UnsupportedFormatter struct{}

func (UnsupportedFormatter) FormatValue(reflect.Value) (string, bool, error) {
	return "", false, errors.ErrUnsupported
}

// FormatterFunc returns a ValueFormatter for a strongly typed
// function. Values of other types than T are not supported.
func FormatterFunc[T any](format func(T) string) ValueFormatter {
	return ValueFormatterFunc(func(val reflect.Value) (string, bool, error) {
		v, ok := val.Interface().(T)
		if !ok {
			return "", false, errors.ErrUnsupported
		}
		return format(v), false, nil
	})
}
