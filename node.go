package goschema

import (
	"reflect"
)

// Node is one unit of a schema. The variant set is closed: Literal,
// TypeNode, Predicate, SeqNode, SetNode, TupleNode, Map, OptionalKey,
// *AndNode, *OrNode, *UseNode and *Schema.
type Node interface {
	String() string
	node()
}

// Literal matches input equal to Value.
type Literal struct{ Value any }

// TypeNode matches input whose dynamic type is T, or implements T when T is
// an interface type.
type TypeNode struct{ T reflect.Type }

// Predicate matches input for which Fn reports true.
type Predicate struct {
	Name string
	Fn   func(any) (bool, error)
}

func (Literal) node()   {}
func (TypeNode) node()  {}
func (Predicate) node() {}

func (l Literal) String() string   { return repr(l.Value) }
func (t TypeNode) String() string  { return t.T.String() }
func (p Predicate) String() string { return p.Name }

// Eq returns a literal node.
func Eq(v any) Literal { return Literal{Value: v} }

// Type returns a node matching values of type T.
func Type[T any]() TypeNode { return TypeNode{T: reflect.TypeFor[T]()} }

// TypeOf returns a node matching values of type t.
func TypeOf(t reflect.Type) TypeNode { return TypeNode{T: t} }

// Pred wraps a boolean check. A panic inside fn fails validation with a
// "raised" diagnostic. An empty name is derived from the function.
func Pred(name string, fn func(any) bool) Predicate {
	if name == "" {
		name = funcName(fn)
	}
	return Predicate{Name: name, Fn: func(v any) (bool, error) { return fn(v), nil }}
}

// PredErr wraps a check that may fail with an error. Returning an *Error
// nests that failure; any other error is reported as raised.
func PredErr(name string, fn func(any) (bool, error)) Predicate {
	if name == "" {
		name = funcName(fn)
	}
	return Predicate{Name: name, Fn: fn}
}

// Lift converts a plain Go value into a Node:
//
//   - a Node is returned as is
//   - a reflect.Type becomes a TypeNode
//   - func(any) bool and func(any) (bool, error) become Predicates
//   - []any becomes a SeqNode over its lifted elements
//   - anything else becomes a Literal
func Lift(v any) Node {
	switch t := v.(type) {
	case Node:
		return t
	case reflect.Type:
		return TypeNode{T: t}
	case func(any) bool:
		return Pred("", t)
	case func(any) (bool, error):
		return PredErr("", t)
	case []any:
		return Seq(t...)
	}
	return Literal{Value: v}
}

func liftAll(vs []any) []Node {
	out := make([]Node, len(vs))
	for i, v := range vs {
		out[i] = Lift(v)
	}
	return out
}
