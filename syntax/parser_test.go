package syntax

import (
	"testing"

	"declres/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		src  string
		repr string
	}{
		{"Int", "Int"},
		{"a.b.C", "a.b.C"},
		{"Map<K, List<out V>>?", "Map<K, List<out V>>?"},
		{"Comparable<in T>", "Comparable<in T>"},
		{"List<*>", "List<*>"},
		{"(Int, String) -> Unit", "(Int, String) -> Unit"},
		{"() -> Unit", "() -> Unit"},
		{"((Int) -> Unit)?", "((Int) -> Unit)?"},
		{"(Int)", "Int"},
		{"List<out>", "List<out>"},
		{"`in`.X", "in.X"},
	}

	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			tr, err := ParseTypeRef(test.src, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, test.repr, tr.Repr())
		})
	}
}

func TestParseTypeRefStructure(t *testing.T) {
	tr, err := ParseTypeRef("Map<K, out V>?", 3, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"Map"}, tr.Path)
	assert.True(t, tr.Nullable)
	require.Len(t, tr.Args, 2)
	assert.Equal(t, ast.Invariant, tr.Args[0].Variance)
	assert.Equal(t, ast.Covariant, tr.Args[1].Variance)
	assert.Equal(t, []string{"V"}, tr.Args[1].Type.Path)

	// Spans are relative to the position of the string.
	assert.Equal(t, 3, tr.Span.StartLine)
	assert.Equal(t, 10, tr.Span.StartCol)
	assert.Equal(t, 23, tr.Span.EndCol)

	ft, err := ParseTypeRef("(A) -> B", 0, 0)
	require.NoError(t, err)
	assert.True(t, ft.IsFunc())
	require.Len(t, ft.Params, 1)
	assert.Equal(t, []string{"B"}, ft.Return.Path)

	raw, err := ParseTypeRef("List", 0, 0)
	require.NoError(t, err)
	assert.Nil(t, raw.Args)
}

func TestParseTypeRefErrors(t *testing.T) {
	for _, src := range []string{"", "List<", "List<>", "a.", "(A, B)", "A B", "A -", "`", "#"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseTypeRef(src, 0, 0)
			assert.Error(t, err)
		})
	}
}

func TestParseImport(t *testing.T) {
	imp, err := ParseImport("a.b.C", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "C"}, imp.Path)
	assert.False(t, imp.Star)
	assert.Empty(t, imp.Alias)

	imp, err = ParseImport("a.b.*", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, imp.Path)
	assert.True(t, imp.Star)

	imp, err = ParseImport("a.Foo as Bar", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Foo"}, imp.Path)
	assert.Equal(t, "Bar", imp.Alias)
	assert.Equal(t, "a.Foo", imp.QualifiedName())

	for _, src := range []string{"*", "a.*.b", "a as", "a.b as C D"} {
		_, err := ParseImport(src, 0, 0)
		assert.Error(t, err, src)
	}
}

func TestParseTypeParam(t *testing.T) {
	tp, err := ParseTypeParam("out T : Comparable<T>", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "T", tp.Name)
	assert.Equal(t, ast.Covariant, tp.Variance)
	require.NotNil(t, tp.Bound)
	assert.Equal(t, "Comparable<T>", tp.Bound.Repr())

	tp, err = ParseTypeParam("in", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "in", tp.Name)
	assert.Equal(t, ast.Invariant, tp.Variance)
}
