package goschema

import (
	"github.com/reoring/goschema/i18n"
)

// Validator is implemented by the facade and by every combinator.
type Validator interface {
	Validate(v any) (any, error)
}

// AndNode feeds the input through each member in turn.
type AndNode struct {
	Members []Node
	err     string
}

// And returns a conjunction of the lifted members. The result of each member
// is the input of the next; the first failure stops validation.
func And(members ...any) *AndNode { return &AndNode{Members: liftAll(members)} }

func (*AndNode) node() {}

func (a *AndNode) String() string { return "And(" + joinNodes(a.Members) + ")" }

// WithError returns a copy of a reporting msg as its caller message.
func (a *AndNode) WithError(msg string) *AndNode {
	cp := *a
	cp.err = msg
	return &cp
}

// Validate runs the conjunction on v.
func (a *AndNode) Validate(v any) (any, error) { return result(a.validate(v)) }

func (a *AndNode) validate(v any) (any, *Error) {
	for _, m := range a.Members {
		out, err := validate(m, v, a.err)
		if err != nil {
			return nil, err
		}
		v = out
	}
	return v, nil
}

// OrNode accepts the first member that validates the input.
type OrNode struct {
	Members []Node
	err     string
}

// Or returns a disjunction of the lifted members.
func Or(members ...any) *OrNode { return &OrNode{Members: liftAll(members)} }

func (*OrNode) node() {}

func (o *OrNode) String() string { return "Or(" + joinNodes(o.Members) + ")" }

// WithError returns a copy of o reporting msg as its caller message. The
// message is attached to every level of a failed alternation.
func (o *OrNode) WithError(msg string) *OrNode {
	cp := *o
	cp.err = msg
	return &cp
}

// Validate tries each member against v.
func (o *OrNode) Validate(v any) (any, error) { return result(o.validate(v)) }

func (o *OrNode) validate(v any) (any, *Error) {
	var diags []Diagnostic
	for _, m := range o.Members {
		out, err := validate(m, v, o.err)
		if err == nil {
			return out, nil
		}
		diags = append(diags, err.diags...)
	}
	diags = append(diags, Diagnostic{
		Code: CodeNoMatch,
		Auto: i18n.T(CodeNoMatch, map[string]string{"alternatives": joinNodes(o.Members), "value": repr(v)}),
		Err:  o.err,
	})
	if o.err != "" {
		for i := range diags {
			if diags[i].Err == "" {
				diags[i].Err = o.err
			}
		}
	}
	return nil, &Error{diags: diags}
}

// UseNode transforms the input instead of checking it.
type UseNode struct {
	Name string
	Fn   func(any) (any, error)
	err  string
}

// Use returns a transformation node. fn's result replaces the value; a
// returned *Error nests that failure and any other error or panic fails with
// a raised diagnostic. An empty name is derived from the function.
func Use(name string, fn func(any) (any, error)) *UseNode {
	if name == "" {
		name = funcName(fn)
	}
	return &UseNode{Name: name, Fn: fn}
}

func (*UseNode) node() {}

func (u *UseNode) String() string { return "Use(" + u.Name + ")" }

// WithError returns a copy of u reporting msg as its caller message.
func (u *UseNode) WithError(msg string) *UseNode {
	cp := *u
	cp.err = msg
	return &cp
}

// Validate applies the transformation to v.
func (u *UseNode) Validate(v any) (any, error) { return result(u.validate(v)) }

func (u *UseNode) validate(v any) (any, *Error) {
	return call(u.Name, v, u.err, func() (any, error) { return u.Fn(v) })
}

// OptionalKey marks a Map key that may be absent from the input.
type OptionalKey struct{ Key Node }

// Optional wraps a key schema so that Map does not require it.
func Optional(key any) OptionalKey { return OptionalKey{Key: Lift(key)} }

func (OptionalKey) node() {}

func (o OptionalKey) String() string { return "Optional(" + o.Key.String() + ")" }

// Validate checks v against the wrapped key schema.
func (o OptionalKey) Validate(v any) (any, error) { return result(validate(o.Key, v, "")) }

// result converts an internal outcome to the public (any, error) pair without
// leaking a typed nil.
func result(out any, err *Error) (any, error) {
	if err != nil {
		return nil, err
	}
	return out, nil
}
