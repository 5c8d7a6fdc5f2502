// Package pred provides ready-made predicates for goschema.
package pred

import (
	"errors"
	"os"
	"reflect"

	"github.com/spf13/cast"

	goschema "github.com/reoring/goschema"
)

// ErrNotPath is returned by the filesystem predicates for non-string input.
var ErrNotPath = errors.New("pred: expected a path string")

// PathExists reports whether the string input names an existing file or
// directory.
func PathExists() goschema.Predicate {
	return goschema.PredErr("exists", func(v any) (bool, error) {
		fi, err := stat(v)
		return fi != nil, err
	})
}

// IsFile reports whether the string input names a regular file.
func IsFile() goschema.Predicate {
	return goschema.PredErr("isfile", func(v any) (bool, error) {
		fi, err := stat(v)
		return fi != nil && fi.Mode().IsRegular(), err
	})
}

// IsDir reports whether the string input names a directory.
func IsDir() goschema.Predicate {
	return goschema.PredErr("isdir", func(v any) (bool, error) {
		fi, err := stat(v)
		return fi != nil && fi.IsDir(), err
	})
}

// stat returns nil info and nil error for a missing path.
func stat(v any) (os.FileInfo, error) {
	p, ok := v.(string)
	if !ok {
		return nil, ErrNotPath
	}
	fi, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return fi, err
}

// NonEmpty reports whether a string, slice, array, map or channel has at
// least one element.
func NonEmpty() goschema.Predicate {
	return goschema.Pred("len", func(v any) bool {
		return reflect.ValueOf(v).Len() > 0
	})
}

// Between reports whether a numeric input n satisfies lo <= n <= hi.
// Numeric strings are converted first.
func Between(lo, hi float64) goschema.Predicate {
	return goschema.PredErr("between", func(v any) (bool, error) {
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return false, err
		}
		return lo <= n && n <= hi, nil
	})
}
