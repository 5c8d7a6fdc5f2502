package goschema

import (
	"reflect"
	"strings"

	"github.com/reoring/goschema/i18n"
)

// SeqNode matches a slice whose every element matches at least one member.
type SeqNode struct{ Members []Node }

// SetNode matches a set, represented as map[K]struct{} or map[K]bool, whose
// every member key matches at least one member node.
type SetNode struct{ Members []Node }

// TupleNode matches an array whose every element matches at least one member.
// Matching is not positional.
type TupleNode struct{ Members []Node }

// Seq returns a sequence schema over the lifted members.
func Seq(members ...any) SeqNode { return SeqNode{Members: liftAll(members)} }

// Set returns a set schema over the lifted members.
func Set(members ...any) SetNode { return SetNode{Members: liftAll(members)} }

// Tuple returns an array schema over the lifted members.
func Tuple(members ...any) TupleNode { return TupleNode{Members: liftAll(members)} }

func (SeqNode) node()   {}
func (SetNode) node()   {}
func (TupleNode) node() {}

func (s SeqNode) String() string   { return "[" + joinNodes(s.Members) + "]" }
func (s SetNode) String() string   { return "{" + joinNodes(s.Members) + "}" }
func (s TupleNode) String() string { return "(" + joinNodes(s.Members) + ")" }

func (s SeqNode) validate(v any, msg string) (any, *Error) {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Slice {
		return nil, typeError(v, "slice", msg)
	}
	out, err := eachItem(rv, s.Members, msg)
	if err != nil {
		return nil, err
	}
	return rebuildSlice(rv.Type(), out), nil
}

func (s TupleNode) validate(v any, msg string) (any, *Error) {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Array {
		return nil, typeError(v, "array", msg)
	}
	out, err := eachItem(rv, s.Members, msg)
	if err != nil {
		return nil, err
	}
	return rebuildArray(rv.Type(), out), nil
}

func (s SetNode) validate(v any, msg string) (any, *Error) {
	rv := reflect.ValueOf(v)
	if v == nil || !isSet(rv.Type()) {
		return nil, typeError(v, "set", msg)
	}
	alt := &OrNode{Members: s.Members, err: msg}
	entries := sortedEntries(rv)
	outK := make([]any, len(entries))
	outV := make([]any, len(entries))
	for i, e := range entries {
		nk, err := alt.validate(e.key.Interface())
		if err != nil {
			return nil, err.wrap(msg)
		}
		outK[i] = nk
		outV[i] = e.value.Interface()
	}
	return rebuildMap(rv.Type(), outK, outV), nil
}

func isSet(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	e := t.Elem()
	return e.Kind() == reflect.Bool || (e.Kind() == reflect.Struct && e.NumField() == 0)
}

// eachItem validates every element of a slice or array against the implicit
// Or over members, stopping at the first failure.
func eachItem(rv reflect.Value, members []Node, msg string) ([]any, *Error) {
	alt := &OrNode{Members: members, err: msg}
	out := make([]any, rv.Len())
	for i := range out {
		item, err := alt.validate(rv.Index(i).Interface())
		if err != nil {
			return nil, err.wrap(msg)
		}
		out[i] = item
	}
	return out, nil
}

// Entry is one key/value pair of a Map schema. Key and Value are lifted with
// Lift.
type Entry struct {
	Key   any
	Value any
}

// Map matches a Go map. Entries are consulted in order.
type Map []Entry

func (Map) node() {}

func (m Map) String() string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = Lift(e.Key).String() + ": " + Lift(e.Value).String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type liftedEntry struct {
	key, value Node
}

// literalKey reports whether k is looked up by equality, and whether it may
// be absent.
func literalKey(k Node) (lit Literal, optional, ok bool) {
	if o, isOpt := k.(OptionalKey); isOpt {
		optional = true
		k = o.Key
	}
	lit, ok = k.(Literal)
	return lit, optional, ok
}

func (m Map) validate(v any, msg string) (any, *Error) {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Map {
		return nil, typeError(v, "map", msg)
	}
	entries := sortedEntries(rv)
	// slot maps an input entry to its position in outK/outV once claimed.
	slot := make([]int, len(entries))
	for i := range slot {
		slot[i] = -1
	}
	var outK, outV []any
	var open []liftedEntry

	// Literal keys first.
	for _, e := range m {
		kn, vn := Lift(e.Key), Lift(e.Value)
		lit, optional, ok := literalKey(kn)
		if !ok {
			open = append(open, liftedEntry{key: kn, value: vn})
			continue
		}
		i := findKey(entries, slot, lit.Value)
		if i < 0 {
			if optional {
				continue
			}
			return nil, newError(CodeMissingKey, map[string]string{"key": repr(lit.Value)}, msg)
		}
		k := entries[i].key.Interface()
		if j := slot[i]; j >= 0 {
			// A repeated literal entry constrains the value already produced.
			nv, err := validate(vn, outV[j], msg)
			if err != nil {
				return nil, invalidValue(err, k, msg)
			}
			outV[j] = nv
			continue
		}
		nv, err := validate(vn, entries[i].value.Interface(), msg)
		if err != nil {
			return nil, invalidValue(err, k, msg)
		}
		slot[i] = len(outK)
		outK = append(outK, k)
		outV = append(outV, nv)
	}

	// Then type, predicate and transforming keys against what is left.
	for i, in := range entries {
		if slot[i] >= 0 {
			continue
		}
		kv := in.key.Interface()
		wrongKey := func() *Error {
			return newError(CodeWrongKey, map[string]string{"key": repr(kv), "value": repr(v)}, msg)
		}
		for _, e := range open {
			nk, err := validate(e.key, kv, msg)
			if err != nil {
				continue
			}
			nv, verr := validate(e.value, in.value.Interface(), msg)
			if verr != nil {
				return nil, invalidValue(verr, kv, msg)
			}
			if contains(outK, nk) {
				return nil, wrongKey()
			}
			slot[i] = len(outK)
			outK = append(outK, nk)
			outV = append(outV, nv)
			break
		}
		if slot[i] < 0 {
			return nil, wrongKey()
		}
	}
	return rebuildMap(rv.Type(), outK, outV), nil
}

// findKey returns the index of the entry whose key equals want, preferring
// entries no earlier literal has claimed.
func findKey(entries []mapEntry, slot []int, want any) int {
	found := -1
	for i, e := range entries {
		if !equal(want, e.key.Interface()) {
			continue
		}
		if slot[i] < 0 {
			return i
		}
		if found < 0 {
			found = i
		}
	}
	return found
}

func contains(keys []any, k any) bool {
	for _, x := range keys {
		if equal(x, k) {
			return true
		}
	}
	return false
}

func invalidValue(err *Error, key any, msg string) *Error {
	auto := i18n.T(CodeInvalidValue, map[string]string{"key": repr(key)})
	return err.extend(Diagnostic{Code: CodeInvalidValue, Auto: auto, Err: msg})
}

var anyType = reflect.TypeFor[any]()

// fits reports whether v can be stored in a slot of type t.
func fits(t reflect.Type, v any) bool {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

func valueFor(t reflect.Type, v any) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}

func allFit(t reflect.Type, vs []any) bool {
	for _, v := range vs {
		if !fits(t, v) {
			return false
		}
	}
	return true
}

// rebuildSlice returns a new slice of type t holding elems, or []any when a
// transformed element no longer fits t's element type.
func rebuildSlice(t reflect.Type, elems []any) any {
	if !allFit(t.Elem(), elems) {
		t = reflect.SliceOf(anyType)
	}
	out := reflect.MakeSlice(t, len(elems), len(elems))
	for i, e := range elems {
		out.Index(i).Set(valueFor(t.Elem(), e))
	}
	return out.Interface()
}

func rebuildArray(t reflect.Type, elems []any) any {
	if !allFit(t.Elem(), elems) {
		t = reflect.ArrayOf(len(elems), anyType)
	}
	out := reflect.New(t).Elem()
	for i, e := range elems {
		out.Index(i).Set(valueFor(t.Elem(), e))
	}
	return out.Interface()
}

// rebuildMap returns a new map of type t, widening the key or element type to
// any when a transformed key or value no longer fits.
func rebuildMap(t reflect.Type, keys, vals []any) any {
	kt, vt := t.Key(), t.Elem()
	if !allFit(kt, keys) {
		kt = anyType
	}
	if !allFit(vt, vals) {
		vt = anyType
	}
	if kt != t.Key() || vt != t.Elem() {
		t = reflect.MapOf(kt, vt)
	}
	out := reflect.MakeMapWithSize(t, len(keys))
	for i := range keys {
		out.SetMapIndex(valueFor(kt, keys[i]), valueFor(vt, vals[i]))
	}
	return out.Interface()
}
