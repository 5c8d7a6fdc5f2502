package goschema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ValidateAs validates v with s and returns the result as T. A result that
// is already a T is returned directly; otherwise it is decoded into T with
// mapstructure, honouring `mapstructure` struct tags and weakly typed
// conversions.
func ValidateAs[T any](s Validator, v any) (T, error) {
	var zero T
	out, err := s.Validate(v)
	if err != nil {
		return zero, err
	}
	if t, ok := out.(T); ok {
		return t, nil
	}
	var dst T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &dst,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return zero, fmt.Errorf("goschema: decoder: %w", err)
	}
	if err := dec.Decode(out); err != nil {
		return zero, fmt.Errorf("goschema: decode into %T: %w", zero, err)
	}
	return dst, nil
}
