package resolve

import (
	"testing"

	"declres/ast"
	"declres/depm"
	"declres/report"
	"declres/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// source is an inline compilation unit.
type source struct {
	path, src string
}

func runWith(t *testing.T, opts Options, srcs ...source) *Result {
	t.Helper()

	files := make([]*ast.File, len(srcs))
	for i, s := range srcs {
		file, err := syntax.ParseSkeleton(s.path, []byte(s.src))
		require.NoError(t, err)
		files[i] = file
	}

	res, err := NewEngine(opts).Run(files)
	require.NoError(t, err)
	return res
}

func run(t *testing.T, srcs ...source) *Result {
	t.Helper()
	return runWith(t, Options{}, srcs...)
}

func lookup(t *testing.T, res *Result, path, site, ref string) *Outcome {
	t.Helper()

	o, err := res.Lookup(path, site, ref)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func diagKinds(res *Result) []report.Kind {
	kinds := make([]report.Kind, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		kinds[i] = d.Kind
	}

	return kinds
}

func builtin(t *testing.T, res *Result, pkgName, name string) depm.DeclID {
	t.Helper()

	pkg, ok := res.Table.Package(pkgName)
	require.True(t, ok)

	ids := pkg.Lookup(name)
	require.NotEmpty(t, ids)
	return ids[0]
}

// -----------------------------------------------------------------------------

func TestMultifilePackageVisibility(t *testing.T) {
	res := run(t,
		source{"a.yaml", "package: p\ndecls: [{kind: class, name: A}]"},
		source{"b.yaml", "package: p\ndecls: [{kind: class, name: B, supertypes: [A]}]"},
	)

	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Files, 2)
	assert.Len(t, res.Builtins, 2)

	o := lookup(t, res, "b.yaml", "B", "A")
	assert.Equal(t, Resolved, o.State)
	assert.Equal(t, ScopePackage, o.Level)
	assert.Equal(t, "p.A", o.Symbol.Name)

	fr, ok := res.File("b.yaml")
	require.True(t, ok)

	b, ok := res.FindDecl("b.yaml", "B")
	require.True(t, ok)

	outcomes := fr.OutcomesOf(b.ID)
	require.Len(t, outcomes, 1)
	assert.Equal(t, Resolved, outcomes[0].State)
	assert.Equal(t, b.ID, outcomes[0].Site)

	sts := res.Supertypes(b.ID)
	require.Len(t, sts, 1)
	assert.Equal(t, "p.A", sts[0].Name)
}

func TestRunDiagnosticsAreReported(t *testing.T) {
	rep := report.NewReporter(report.LogLevelSilent)
	res := runWith(t, Options{Reporter: rep},
		source{"a.yaml", "decls: [{kind: property, name: p, type: Missing}]"},
	)

	assert.True(t, res.AnyErrors())
	assert.True(t, rep.AnyErrors())
	assert.Equal(t, []report.Kind{report.KindUnresolvedReference}, diagKinds(res))
	assert.Equal(t, "a.yaml", res.Diagnostics[0].Path)
	assert.Equal(t, "unable to resolve `Missing`", res.Diagnostics[0].Message)
}

func TestDefaultImports(t *testing.T) {
	app := source{"app.yaml", `
package: app
decls:
  - {kind: property, name: p, type: "List<Int>"}
`}

	res := run(t, app)
	assert.Empty(t, res.Diagnostics)

	o := lookup(t, res, "app.yaml", "", "List")
	assert.Equal(t, ScopeRoot, o.Level)
	assert.Equal(t, "std.collections.List", o.Symbol.Name)

	fr, _ := res.File("app.yaml")
	require.Len(t, fr.Outcomes, 2)
	assert.Equal(t, "std.Int", fr.Outcomes[1].Symbol.Name)

	// Without std.collections, List is unknown.
	res = runWith(t, Options{DefaultImports: []string{"std.*"}}, app)
	assert.Equal(t, []report.Kind{report.KindUnresolvedReference}, diagKinds(res))
}

func TestInvalidDefaultImports(t *testing.T) {
	for _, defaults := range [][]string{{"nope.*"}, {"std"}, {"std..*"}} {
		_, err := NewEngine(Options{DefaultImports: defaults}).Run(nil)
		assert.Error(t, err, defaults)
	}

	// A classifier can be opened by a default import.
	_, err := NewEngine(Options{DefaultImports: []string{"std.collections.Map.*"}}).Run(nil)
	assert.NoError(t, err)
}

func TestDeterministicResults(t *testing.T) {
	srcs := []source{
		{"a.yaml", `
package: p
imports: ["q.*", "r.*"]
decls:
  - {kind: typealias, name: A, type: B}
  - {kind: typealias, name: B, type: A}
  - {kind: class, name: C, supertypes: [Shared, Missing]}
  - {kind: property, name: x, type: "Map<String, List<C>>"}
`},
		{"b.yaml", `
package: q
decls:
  - {kind: class, name: Shared}
  - {kind: typealias, name: L, type-params: [T], type: "List<T>"}
  - {kind: property, name: y, type: "L<Int>"}
`},
		{"c.yaml", `
package: r
decls: [{kind: class, name: Shared}, {kind: property, name: z, type: "q.L<String>"}]
`},
	}

	summarize := func(res *Result) []string {
		var lines []string
		for _, d := range res.Diagnostics {
			lines = append(lines, d.Error())
		}

		for _, fr := range res.Files {
			for _, o := range fr.Outcomes {
				lines = append(lines, o.String())
			}
		}

		return lines
	}

	expected := summarize(runWith(t, Options{Workers: 1}, srcs...))
	for i := 0; i < 5; i++ {
		assert.Equal(t, expected, summarize(runWith(t, Options{Workers: 8}, srcs...)))
	}
}

func TestPhases(t *testing.T) {
	obs := &recordingObserver{}
	runWith(t, Options{Phases: obs}, source{"a.yaml", "decls: [{kind: class, name: A}]"})

	assert.Equal(t, []string{"Collecting", "Linking", "Resolving"}, obs.phases)
	assert.Equal(t, []bool{true, true, true}, obs.results)
}

type recordingObserver struct {
	phases  []string
	results []bool
}

func (ro *recordingObserver) BeginPhase(name string) {
	ro.phases = append(ro.phases, name)
}

func (ro *recordingObserver) EndPhase(success bool) {
	ro.results = append(ro.results, success)
}

func TestInvalidPackageName(t *testing.T) {
	file, err := syntax.ParseSkeleton("a.yaml", []byte("package: a..b"))
	require.NoError(t, err)

	_, err = NewEngine(Options{}).Run([]*ast.File{file})
	assert.EqualError(t, err, "a.yaml: invalid package name `a..b`")
}

func TestRunIDs(t *testing.T) {
	eng := NewEngine(Options{})

	a, err := eng.Run(nil)
	require.NoError(t, err)

	b, err := eng.Run(nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Empty(t, a.Files)
}

func TestLookupErrors(t *testing.T) {
	res := run(t, source{"a.yaml", "decls: [{kind: class, name: A}]"})

	_, err := res.Lookup("b.yaml", "", "A")
	assert.Error(t, err)

	_, err = res.Lookup("a.yaml", "B", "A")
	assert.Error(t, err)

	_, err = res.Lookup("a.yaml", "", "A<")
	assert.Error(t, err)

	_, err = res.Lookup("a.yaml", "", "(A) -> A")
	assert.Error(t, err)
}
