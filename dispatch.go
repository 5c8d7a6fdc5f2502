package goschema

import (
	"fmt"
	"reflect"
)

// validate matches v against n. msg is the caller message of the nearest
// enclosing facade or combinator; leaf failures carry it directly and
// nested failures are extended with it.
func validate(n Node, v any, msg string) (any, *Error) {
	switch t := n.(type) {
	case *Schema:
		return nested(t.validate, v, msg)
	case *AndNode:
		return nested(t.validate, v, msg)
	case *OrNode:
		return nested(t.validate, v, msg)
	case *UseNode:
		return nested(t.validate, v, msg)
	case SeqNode:
		return t.validate(v, msg)
	case SetNode:
		return t.validate(v, msg)
	case TupleNode:
		return t.validate(v, msg)
	case Map:
		return t.validate(v, msg)
	case OptionalKey:
		return validate(t.Key, v, msg)
	case TypeNode:
		return matchType(t, v, msg)
	case Predicate:
		return matchPredicate(t, v, msg)
	case Literal:
		return matchLiteral(t, v, msg)
	}
	panic(fmt.Sprintf("goschema: unknown node %T", n))
}

func nested(fn func(any) (any, *Error), v any, msg string) (any, *Error) {
	out, err := fn(v)
	if err != nil {
		return nil, err.wrap(msg)
	}
	return out, nil
}

func matchType(t TypeNode, v any, msg string) (any, *Error) {
	if isInstance(v, t.T) {
		return v, nil
	}
	return nil, typeError(v, t.T.String(), msg)
}

func typeError(v any, want, msg string) *Error {
	return newError(CodeInvalidType, map[string]string{"value": repr(v), "type": want}, msg)
}

func isInstance(v any, t reflect.Type) bool {
	if v == nil {
		return t.Kind() == reflect.Interface && t.NumMethod() == 0
	}
	vt := reflect.TypeOf(v)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt == t
}

func matchPredicate(p Predicate, v any, msg string) (any, *Error) {
	ok, err := call(p.Name, v, msg, func() (bool, error) { return p.Fn(v) })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(CodeFalsy, map[string]string{"name": p.Name, "value": repr(v)}, msg)
	}
	return v, nil
}

func matchLiteral(l Literal, v any, msg string) (any, *Error) {
	if equal(l.Value, v) {
		return v, nil
	}
	return nil, newError(CodeMismatch, map[string]string{"schema": repr(l.Value), "value": repr(v)}, msg)
}

// call runs a caller-supplied callable. A returned *Error is extended with
// msg; any other error, or a panic, becomes a raised diagnostic naming only
// its type.
func call[T any](name string, v any, msg string, fn func() (T, error)) (out T, verr *Error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(*Error); ok {
			verr = e.wrap(msg)
			return
		}
		verr = raised(name, v, r, msg)
	}()
	res, err := fn()
	if err != nil {
		if e, ok := AsError(err); ok {
			return out, e.wrap(msg)
		}
		return out, raised(name, v, err, msg)
	}
	return res, nil
}

func raised(name string, v, cause any, msg string) *Error {
	return newError(CodeRaised, map[string]string{"name": name, "value": repr(v), "type": typeName(cause)}, msg)
}
