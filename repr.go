package goschema

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// repr renders a value for diagnostics. Strings are quoted, containers are
// rendered element-wise and map keys are sorted so messages are stable.
func repr(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case reflect.Type:
		return t.String()
	case Node:
		return t.String()
	case error:
		return strconv.Quote(t.Error())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "[]"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = repr(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		parts := make([]string, 0, rv.Len())
		for _, e := range sortedEntries(rv) {
			parts = append(parts, repr(e.key.Interface())+": "+repr(e.value.Interface()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}

// mapEntry is one key/value pair read from a map value. Pairs are read
// together because a NaN key cannot be looked up again.
type mapEntry struct {
	key, value reflect.Value
}

// sortedEntries returns the entries of a map value ordered by the repr of
// their keys.
func sortedEntries(m reflect.Value) []mapEntry {
	out := make([]mapEntry, 0, m.Len())
	names := make([]string, 0, m.Len())
	for it := m.MapRange(); it.Next(); {
		out = append(out, mapEntry{key: it.Key(), value: it.Value()})
		names = append(names, repr(it.Key().Interface()))
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return names[idx[a]] < names[idx[b]] })
	sorted := make([]mapEntry, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

// funcName derives a printable name for fn when the caller gave none.
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "func"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// typeName renders the dynamic type of something a callable raised.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// equal reports literal equality. Integers compare exactly across signed and
// unsigned kinds, and by float value when either side is a float (so 1
// matches a decoded float64 1); everything else uses DeepEqual.
func equal(a, b any) bool {
	ka, kb := numKind(a), numKind(b)
	if ka == notNumber || kb == notNumber {
		return ka == kb && reflect.DeepEqual(a, b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case ka == floatNumber || kb == floatNumber:
		return toFloat(va) == toFloat(vb)
	case ka == kb && ka == signedNumber:
		return va.Int() == vb.Int()
	case ka == kb:
		return va.Uint() == vb.Uint()
	case ka == signedNumber:
		return va.Int() >= 0 && uint64(va.Int()) == vb.Uint()
	default:
		return vb.Int() >= 0 && uint64(vb.Int()) == va.Uint()
	}
}

const (
	notNumber = iota
	signedNumber
	unsignedNumber
	floatNumber
)

func numKind(v any) int {
	if v == nil {
		return notNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedNumber
	case reflect.Float32, reflect.Float64:
		return floatNumber
	}
	return notNumber
}

func toFloat(rv reflect.Value) float64 {
	switch numKind(rv.Interface()) {
	case signedNumber:
		return float64(rv.Int())
	case unsignedNumber:
		return float64(rv.Uint())
	}
	return rv.Float()
}
