package goschema

import (
	"log/slog"
)

// Schema is the reusable entry point wrapping a schema node. It is
// immutable and safe for concurrent use when the callables inside it are.
type Schema struct {
	root   Node
	err    string
	logger *slog.Logger
}

// New builds a Schema from node, lifted with Lift.
func New(node any) *Schema { return &Schema{root: Lift(node)} }

func (*Schema) node() {}

func (s *Schema) String() string { return "Schema(" + s.root.String() + ")" }

// WithError returns a copy of s reporting msg as its caller message.
func (s *Schema) WithError(msg string) *Schema {
	cp := *s
	cp.err = msg
	return &cp
}

// WithLogger returns a copy of s that logs failed validations at debug
// level. Nested schemas log only when they carry their own logger.
func (s *Schema) WithLogger(l *slog.Logger) *Schema {
	cp := *s
	cp.logger = l
	return &cp
}

// Validate checks v and returns the validated, possibly transformed, value.
// Failures are returned as *Error.
func (s *Schema) Validate(v any) (any, error) { return result(s.validate(v)) }

func (s *Schema) validate(v any) (any, *Error) {
	out, err := validate(s.root, v, s.err)
	if err != nil && s.logger != nil {
		s.logger.Debug("validation failed", slog.String("schema", s.String()), slog.Any("error", err))
	}
	return out, err
}

// MustValidate is like Validate but panics on failure.
func (s *Schema) MustValidate(v any) any {
	out, err := s.Validate(v)
	if err != nil {
		panic(err)
	}
	return out
}
