package transform

import (
	"fmt"
	"time"

	goschema "github.com/reoring/goschema"
)

// RFC3339 converts an RFC3339 string into a time.Time. Fractional seconds
// are accepted. A time.Time input passes through.
func RFC3339() *goschema.UseNode {
	return goschema.Use("rfc3339", func(v any) (any, error) {
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			return parseRFC3339(t)
		}
		return nil, fmt.Errorf("%w: %T", ErrNotText, v)
	})
}

// Time converts a string into a time.Time using layout.
func Time(layout string) *goschema.UseNode {
	return goschema.Use("time", func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotText, v)
		}
		return time.Parse(layout, s)
	})
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
