// Package transform provides ready-made Use nodes converting loosely typed
// input into Go values.
package transform

import (
	"errors"

	"github.com/spf13/cast"

	goschema "github.com/reoring/goschema"
)

// ErrNotText is wrapped by transforms that only accept string or []byte
// input.
var ErrNotText = errors.New("transform: expected string or []byte")

// Int converts numbers, numeric strings and booleans to int. Floats are
// truncated; strings with a fractional part are rejected.
func Int() *goschema.UseNode {
	return goschema.Use("int", func(v any) (any, error) { return cast.ToIntE(v) })
}

// Float converts numbers and numeric strings to float64.
func Float() *goschema.UseNode {
	return goschema.Use("float", func(v any) (any, error) { return cast.ToFloat64E(v) })
}

// String converts scalars to their string form.
func String() *goschema.UseNode {
	return goschema.Use("str", func(v any) (any, error) { return cast.ToStringE(v) })
}

// Bool converts booleans, numbers and strings such as "true" or "0".
func Bool() *goschema.UseNode {
	return goschema.Use("bool", func(v any) (any, error) { return cast.ToBoolE(v) })
}
