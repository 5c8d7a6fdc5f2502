package goschema_test

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goschema "github.com/reoring/goschema"
	"github.com/reoring/goschema/pred"
	"github.com/reoring/goschema/transform"
)

var (
	intT   = goschema.Type[int]()
	strT   = goschema.Type[string]()
	floatT = goschema.Type[float64]()
)

// between mirrors `0 < n < 5`; it panics on non-int input.
func between(lo, hi int) goschema.Predicate {
	return goschema.Pred("between", func(v any) bool {
		n := v.(int)
		return lo < n && n < hi
	})
}

func mustFail(t *testing.T, v goschema.Validator, in any) *goschema.Error {
	t.Helper()
	out, err := v.Validate(in)
	require.Error(t, err, "expected failure, got %#v", out)
	assert.Nil(t, out)
	e, ok := goschema.AsError(err)
	require.True(t, ok, "expected *goschema.Error, got %T", err)
	return e
}

func mustPass(t *testing.T, v goschema.Validator, in any) any {
	t.Helper()
	out, err := v.Validate(in)
	require.NoError(t, err)
	return out
}

func TestSchema_Scalars(t *testing.T) {
	assert.Equal(t, 1, mustPass(t, goschema.New(1), 1))
	mustFail(t, goschema.New(1), 9)

	assert.Equal(t, 1, mustPass(t, goschema.New(intT), 1))
	mustFail(t, goschema.New(intT), "1")
	assert.Equal(t, 1, mustPass(t, goschema.New(transform.Int()), "1"))
	mustFail(t, goschema.New(intT), reflect.TypeFor[int]())

	assert.Equal(t, "hai", mustPass(t, goschema.New(strT), "hai"))
	mustFail(t, goschema.New(strT), 1)
	assert.Equal(t, "1", mustPass(t, goschema.New(transform.String()), 1))

	assert.Equal(t, []any{"a", 1}, mustPass(t, goschema.New(goschema.Type[[]any]()), []any{"a", 1}))
	assert.Equal(t, map[string]any{"a": 1}, mustPass(t, goschema.New(goschema.Type[map[string]any]()), map[string]any{"a": 1}))
	mustFail(t, goschema.New(goschema.Type[map[string]any]()), []any{"a", 1})

	assert.Equal(t, 3, mustPass(t, goschema.New(between(0, 5)), 3))
	mustFail(t, goschema.New(between(0, 5)), -1)
}

func TestSchema_BareFuncIsPredicate(t *testing.T) {
	s := goschema.New(func(v any) bool { return v == "ok" })
	assert.Equal(t, "ok", mustPass(t, s, "ok"))
	mustFail(t, s, "no")
}

func TestSchema_LiteralNumbersCompareByValue(t *testing.T) {
	assert.Equal(t, 1.0, mustPass(t, goschema.New(1), 1.0))
	assert.Equal(t, int64(1), mustPass(t, goschema.New(1), int64(1)))
	assert.Equal(t, uint8(1), mustPass(t, goschema.New(1), uint8(1)))
	mustFail(t, goschema.New("1"), 1)
	mustFail(t, goschema.New(1), true)
}

func TestSchema_InterfaceType(t *testing.T) {
	s := goschema.New(goschema.Type[error]())
	err := os.ErrNotExist
	assert.Equal(t, err, mustPass(t, s, err))
	mustFail(t, s, "not an error")

	assert.Nil(t, mustPass(t, goschema.New(goschema.Type[any]()), nil))
	mustFail(t, goschema.New(intT), nil)
}

func TestAnd(t *testing.T) {
	assert.Equal(t, 3, mustPass(t, goschema.And(intT, between(0, 5)), 3))
	mustFail(t, goschema.And(intT, between(0, 5)), 3.33)
	assert.Equal(t, 3, mustPass(t, goschema.And(transform.Int(), between(0, 5)), 3.33))
	mustFail(t, goschema.And(transform.Int(), between(0, 5)), "3.33")
}

func TestAnd_IsSequentialComposition(t *testing.T) {
	s1, s2 := transform.Int(), goschema.New(between(0, 10))
	for _, in := range []any{"4", 7.9, "12"} {
		mid, err1 := s1.Validate(in)
		require.NoError(t, err1)
		want, err2 := s2.Validate(mid)
		got, err := goschema.And(s1, s2).Validate(in)
		if err2 != nil {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestOr(t *testing.T) {
	mapT := goschema.Type[map[string]any]()
	assert.Equal(t, 5, mustPass(t, goschema.Or(intT, mapT), 5))
	assert.Equal(t, map[string]any{}, mustPass(t, goschema.Or(intT, mapT), map[string]any{}))
	mustFail(t, goschema.Or(intT, mapT), "hai")
}

func TestOr_ReturnsFirstSuccess(t *testing.T) {
	assert.Equal(t, 2, mustPass(t, goschema.Or(strT, transform.Int()), 2.5))
	assert.Equal(t, "2.5", mustPass(t, goschema.Or(transform.String(), transform.Int()), 2.5))
}

func TestOr_OneDiagnosticPerAttemptPlusSummary(t *testing.T) {
	e := mustFail(t, goschema.Or(intT, strT), 1.5)
	require.Len(t, e.Autos(), 3)
	assert.Equal(t, "1.5 should be instance of int", e.Autos()[0])
	assert.Equal(t, "1.5 should be instance of string", e.Autos()[1])
	assert.Equal(t, "Or(int, string) did not validate 1.5", e.Autos()[2])
}

func TestSchema_NestedSchemas(t *testing.T) {
	inner := goschema.New(intT).WithError("inner")
	s := goschema.New(inner).WithError("outer")
	assert.Equal(t, 3, mustPass(t, s, 3))

	e := mustFail(t, s, "x")
	assert.Equal(t, []string{`"x" should be instance of int`, ""}, e.Autos())
	assert.Equal(t, []string{"inner", "outer"}, e.Errors())
	assert.Equal(t, "outer", e.Message())
}

func TestSchema_NiceErrors(t *testing.T) {
	e := mustFail(t, goschema.New(intT).WithError("should be integer"), "x")
	assert.Equal(t, []string{"should be integer"}, e.Errors())
	assert.Equal(t, "should be integer", e.Error())
}

func TestSchema_Complex(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "LICENSE")
	require.NoError(t, os.WriteFile(file, []byte("Copyright (c) 2012"), 0o600))

	open := goschema.Use("open", func(v any) (any, error) { return os.ReadFile(v.(string)) })
	s := goschema.New(goschema.Map{
		{Key: "<file>", Value: goschema.And(goschema.Seq(open), pred.NonEmpty())},
		{Key: "<path>", Value: pred.PathExists()},
		{Key: goschema.Optional("--count"), Value: goschema.And(intT, pred.Between(0, 5))},
	})

	out := mustPass(t, s, map[string]any{"<file>": []any{file}, "<path>": dir})
	data := out.(map[string]any)
	require.Len(t, data, 2)
	files := data["<file>"].([]any)
	require.Len(t, files, 1)
	assert.Equal(t, "Copyright (c) 2012", string(files[0].([]byte)))
	assert.Equal(t, dir, data["<path>"])

	mustFail(t, s, map[string]any{"<file>": []any{file}, "<path>": dir, "--count": 9})
	mustFail(t, s, map[string]any{"<file>": []any{}, "<path>": dir})
	mustFail(t, s, map[string]any{"<file>": []any{filepath.Join(dir, "missing")}, "<path>": dir})
}

func TestSchema_Idempotent(t *testing.T) {
	s := goschema.New(goschema.Map{
		{Key: "a", Value: intT},
		{Key: goschema.Optional("b"), Value: goschema.Seq(strT, 1)},
		{Key: strT, Value: goschema.Or(floatT, goschema.Set(strT))},
	})
	in := map[string]any{
		"a": 1,
		"b": []any{"x", 1},
		"c": 2.5,
		"d": map[string]struct{}{"t": {}},
	}
	first := mustPass(t, s, in)
	second := mustPass(t, s, first)
	assert.Equal(t, first, second)
	assert.Equal(t, in, first)
}

func TestSchema_ConcurrentValidate(t *testing.T) {
	s := goschema.New(goschema.Map{
		{Key: "n", Value: goschema.And(transform.Int(), between(0, 100))},
		{Key: goschema.Optional("tags"), Value: goschema.Seq(strT)},
	})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := s.Validate(map[string]any{"n": i + 1, "tags": []string{"a"}})
			assert.NoError(t, err)
			assert.Equal(t, map[string]any{"n": i + 1, "tags": []string{"a"}}, out)
			_, err = s.Validate(map[string]any{"n": "x"})
			assert.Error(t, err)
		}(i)
	}
	wg.Wait()
}

func TestSchema_MustValidate(t *testing.T) {
	s := goschema.New(intT)
	assert.Equal(t, 1, s.MustValidate(1))
	assert.Panics(t, func() { s.MustValidate("1") })
}

func TestSchema_String(t *testing.T) {
	s := goschema.New(goschema.Map{
		{Key: "a", Value: goschema.And(intT, goschema.Or(1, 2))},
		{Key: goschema.Optional("b"), Value: goschema.Seq(strT)},
		{Key: "c", Value: goschema.Tuple(transform.Int())},
	})
	assert.Equal(t, `Schema({"a": And(int, Or(1, 2)), Optional("b"): [string], "c": (Use(int))})`, s.String())
}
