// Package goschema validates loosely typed Go values (decoded JSON or YAML,
// command-line arguments, configuration maps) against schemas composed from
// plain values.
//
// A schema node is one of:
//
//   - a literal, matched by equality (Eq, or any plain value)
//   - a type, matched by dynamic type (Type[T], TypeOf)
//   - a predicate, matched when it reports true (Pred, PredErr)
//   - a container: Seq over slices, Set over map[K]struct{}, Tuple over
//     arrays, and Map over Go maps with Optional keys
//   - a combinator: And, Or, Use
//   - another *Schema
//
// Validation returns the validated value, transformed where Use nodes
// apply, or an *Error. An *Error keeps two index-aligned channels per
// nesting level: auto-generated diagnostics describing exactly which rule
// failed, and caller messages attached with WithError. Message prefers the
// outermost caller message.
//
// Typical usage:
//
//	s := goschema.New(goschema.Map{
//		{Key: "name", Value: goschema.Type[string]()},
//		{Key: goschema.Optional("count"), Value: goschema.And(transform.Int(), pred.Between(0, 5))},
//	})
//	v, err := s.Validate(input)
//	if err != nil {
//		goschema.Exit(err)
//	}
//
// Design policy:
//   - Keep the engine in the root package; callable helpers live in
//     transform/ and pred/, message templates in i18n/.
//   - The engine performs no I/O; logging happens only through WithLogger.
package goschema
