package report

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterCollectsDiagnostics(t *testing.T) {
	r := NewReporter(LogLevelSilent)
	assert.False(t, r.AnyErrors())

	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Errorf(KindUnresolvedReference, "a.yaml", NewSpanAt(i, 0, 1), "error %d", i)
		}(i)
	}
	wg.Wait()

	r.Report(&Diagnostic{Kind: KindUnresolvedImport, Path: "a.yaml", Message: "careful", IsWarning: true})

	errs, warns := r.Counts()
	assert.Equal(t, 20, errs)
	assert.Equal(t, 1, warns)
	assert.True(t, r.AnyErrors())

	diags := r.Diagnostics()
	require.Len(t, diags, 21)

	// The span-less warning sorts first.
	assert.Nil(t, diags[0].Span)
	for i, d := range diags[1:] {
		assert.Equal(t, i, d.Span.StartLine)
	}
}

func TestSortDiagnostics(t *testing.T) {
	diags := []*Diagnostic{
		NewDiagnostic(KindUnresolvedReference, "b.yaml", NewSpanAt(0, 0, 1), "b"),
		NewDiagnostic(KindUnresolvedReference, "a.yaml", NewSpanAt(2, 4, 1), "z"),
		NewDiagnostic(KindAmbiguousReference, "a.yaml", NewSpanAt(2, 4, 1), "y"),
		NewDiagnostic(KindUnresolvedReference, "a.yaml", NewSpanAt(2, 4, 1), "x"),
		NewDiagnostic(KindDuplicateDeclaration, "a.yaml", NewSpanAt(2, 1, 1), "w"),
	}

	SortDiagnostics(diags)

	messages := make([]string, len(diags))
	for i, d := range diags {
		messages[i] = d.Message
	}

	assert.Equal(t, []string{"w", "x", "z", "y", "b"}, messages)
}

func TestDiagnosticFormatting(t *testing.T) {
	d := NewDiagnostic(KindCyclicTypeAlias, "a.yaml", NewSpanAt(1, 2, 3), "alias `%s` is cyclic", "A")
	assert.Equal(t, "a.yaml:2:3: alias `A` is cyclic", d.Error())
	assert.Equal(t, "CyclicTypeAlias", d.Kind.String())

	assert.Equal(t, "?:?", (*TextSpan)(nil).String())
}

func TestTextSpans(t *testing.T) {
	start := NewSpanAt(1, 2, 3)
	end := NewSpanAt(4, 0, 2)

	over := NewSpanOver(start, end)
	assert.Equal(t, 1, over.StartLine)
	assert.Equal(t, 2, over.StartCol)
	assert.Equal(t, 4, over.EndLine)
	assert.Equal(t, 1, over.EndCol)

	assert.True(t, start.Before(end))
	assert.False(t, end.Before(start))
	assert.True(t, (*TextSpan)(nil).Before(start))
}

func TestCatchErrors(t *testing.T) {
	f := func() (err error) {
		defer CatchErrors(&err)
		panic(Raise(NewSpanAt(0, 0, 1), "bad token `%s`", "?"))
	}

	err := f()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad token `?`")
}
