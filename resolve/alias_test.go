package resolve

import (
	"testing"

	"declres/report"
	"declres/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasExpansionIsCached(t *testing.T) {
	res := run(t, source{"app.yaml", `
package: app
decls:
  - {kind: typealias, name: TA, type-params: [T], type: "List<T>"}
  - {kind: property, name: p, type: "TA<Int>"}
  - {kind: property, name: q, type: "TA<Int>"}
`})

	assert.Empty(t, res.Diagnostics)

	o := lookup(t, res, "app.yaml", "p", "TA<Int>")
	require.Equal(t, Resolved, o.State)
	require.NotNil(t, o.Symbol.Expanded)
	assert.Equal(t, "std.collections.List<std.Int>", o.Symbol.Expanded.Repr())
	assert.Len(t, o.Symbol.Subst, 1)

	ta, ok := res.FindDecl("app.yaml", "TA")
	require.True(t, ok)

	intType := &types.ClassType{Decl: builtin(t, res, "std", "Int"), Name: "std.Int"}

	hits, misses := res.Cache.Stats()
	size := res.Cache.Len()

	typ, err := res.Expand(ta.ID, []types.Type{intType})
	require.NoError(t, err)
	assert.True(t, types.Equals(o.Symbol.Expanded, typ))

	h, m := res.Cache.Stats()
	assert.Equal(t, hits+1, h)
	assert.Equal(t, misses, m)
	assert.Equal(t, size, res.Cache.Len())

	cached, ok := res.Cache.Get(ta.ID, []types.Type{intType})
	require.True(t, ok)
	assert.Same(t, typ, cached)

	// A new argument list is a miss: the own-parameter form is reused.
	strType := &types.ClassType{Decl: builtin(t, res, "std", "String"), Name: "std.String"}
	typ, err = res.Expand(ta.ID, []types.Type{strType})
	require.NoError(t, err)
	assert.Equal(t, "std.collections.List<std.String>", typ.Repr())

	h, m = res.Cache.Stats()
	assert.Equal(t, hits+2, h)
	assert.Equal(t, misses+1, m)
	assert.Equal(t, size+1, res.Cache.Len())
}

func TestNestedAliasExpansion(t *testing.T) {
	res := run(t, source{"app.yaml", `
package: app
decls:
  - {kind: typealias, name: TA, type-params: [T], type: "List<T>"}
  - {kind: typealias, name: TB, type-params: [U], type: "TA<Map<String, U>>"}
  - {kind: typealias, name: N, type-params: [T], type: "T?"}
  - {kind: typealias, name: F, type-params: [A, B], type: "(A) -> B?"}
`})

	assert.Empty(t, res.Diagnostics)

	cases := map[string]string{
		"TB<Int>":          "std.collections.List<std.collections.Map<std.String, std.Int>>",
		"N<Int>":           "std.Int?",
		"N<Int?>":          "std.Int?",
		"TA<out Int>":      "std.collections.List<out std.Int>",
		"F<Int, String>":   "(std.Int) -> std.String?",
		"TA<TB<Boolean>>?": "",
		"TB<*>":            "std.collections.List<std.collections.Map<std.String, *>>",
	}

	for ref, expected := range cases {
		o := lookup(t, res, "app.yaml", "", ref)
		require.Equal(t, Resolved, o.State, ref)
		require.Nil(t, o.Err, ref)

		if expected != "" {
			assert.Equal(t, expected, o.Symbol.Expanded.Repr(), ref)
		}
	}
}

func TestCyclicAliases(t *testing.T) {
	res := run(t, source{"app.yaml", `
package: app
decls:
  - {kind: typealias, name: A, type: B}
  - {kind: typealias, name: B, type: A}
  - {kind: typealias, name: Self, type: "List<Self>"}
  - {kind: typealias, name: C, type: A}
  - {kind: property, name: p, type: A}
`})

	require.Equal(t, []report.Kind{
		report.KindCyclicTypeAlias,
		report.KindCyclicTypeAlias,
		report.KindCyclicTypeAlias,
	}, diagKinds(res))

	assert.Equal(t, "type alias `A` is cyclic: A -> B -> A", res.Diagnostics[0].Message)
	assert.Equal(t, "type alias `B` is cyclic: B -> A -> B", res.Diagnostics[1].Message)
	assert.Equal(t, "type alias `Self` is cyclic: Self -> Self", res.Diagnostics[2].Message)

	a, _ := res.FindDecl("app.yaml", "A")
	assert.Equal(t, a.Span, res.Diagnostics[0].Span)

	// References to a cyclic alias carry the error without reporting it.
	o := lookup(t, res, "app.yaml", "p", "A")
	require.Equal(t, Resolved, o.State)
	require.NotNil(t, o.Err)
	assert.Equal(t, report.KindCyclicTypeAlias, o.Err.Kind)
	assert.Nil(t, o.Symbol.Expanded)

	_, err := res.Expand(a.ID, nil)
	assert.Error(t, err)

	// C only refers to the cycle: it expands to an error type.
	c, _ := res.FindDecl("app.yaml", "C")
	typ, err := res.Expand(c.ID, nil)
	require.NoError(t, err)
	assert.True(t, types.IsError(typ))
}

func TestAliasErrorsReportedOnce(t *testing.T) {
	res := run(t, source{"app.yaml", `
package: app
decls:
  - {kind: typealias, name: TA, type: Missing}
  - {kind: property, name: p, type: TA}
  - {kind: property, name: q, type: TA}
`})

	assert.Equal(t, []report.Kind{report.KindUnresolvedReference}, diagKinds(res))
}

func TestAliasArity(t *testing.T) {
	res := run(t, source{"app.yaml", `
package: app
decls:
  - {kind: typealias, name: TA, type-params: [T], type: "List<T>"}
  - {kind: class, name: Box, type-params: [T]}
  - {kind: class, name: G, type-params: [T], decls: [{kind: property, name: e, type: "T<Int>"}]}
  - {kind: property, name: a, type: "Box<Int, Int>"}
  - {kind: property, name: b, type: Box}
  - {kind: property, name: c, type: TA}
  - {kind: property, name: d, type: "Int<String>"}
  - {kind: property, name: f, type: "TA<Int, Int>"}
  - {kind: fun, name: main, refs: [TA]}
`})

	kinds := diagKinds(res)
	require.Len(t, kinds, 5)
	for _, kind := range kinds {
		assert.Equal(t, report.KindTypeArgumentArity, kind)
	}

	messages := make([]string, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		messages[i] = d.Message
	}

	assert.Equal(t, []string{
		"type parameter `T` does not take type arguments",
		"classifier `Box` expects 1 type argument but got 2",
		"type alias `TA` expects 1 type argument but got 0",
		"classifier `Int` expects no type arguments but got 1",
		"type alias `TA` expects 1 type argument but got 2",
	}, messages)

	// Raw references are allowed.
	o := lookup(t, res, "app.yaml", "b", "Box")
	assert.Nil(t, o.Err)

	ta, _ := res.FindDecl("app.yaml", "TA")
	_, err := res.Expand(ta.ID, nil)
	assert.EqualError(t, err, "type alias `TA` expects 1 type argument but got 0")
}
