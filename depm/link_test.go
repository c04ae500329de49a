package depm

import (
	"testing"

	"declres/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkMergesPackages(t *testing.T) {
	rep := report.NewReporter(report.LogLevelSilent)
	units := []*CompilationUnit{
		Collect(0, parseFile(t, "a1.yaml", "package: app.a\ndecls: [{kind: class, name: A1}, {kind: fun, name: f}]"), rep),
		Collect(1, parseFile(t, "a2.yaml", "package: app.a\ndecls: [{kind: class, name: A2}, {kind: fun, name: f}]"), rep),
		Collect(2, parseFile(t, "b.yaml", "package: app.b.c\ndecls: [{kind: object, name: B, decls: [{kind: class, name: N}]}]"), rep),
	}

	pt := Link(units, rep)
	assert.False(t, rep.AnyErrors())

	pkg, ok := pt.Package("app.a")
	require.True(t, ok)
	assert.Equal(t, []string{"A1", "A2", "f"}, pkg.Names())
	assert.Len(t, pkg.Units, 2)

	// Overloads from different units merge.
	assert.Equal(t, []DeclID{{0, 1}, {1, 1}}, pkg.Lookup("f"))

	assert.True(t, pt.IsPackage("app"))
	assert.True(t, pt.IsPackage("app.b"))
	assert.True(t, pt.IsPackage("app.b.c"))
	assert.False(t, pt.IsPackage("app.c"))

	_, ok = pt.Package("app.b")
	assert.False(t, ok)

	assert.Equal(t, []string{"app.a", "app.b.c"}, pt.Packages())

	b := pt.Decl(DeclID{2, 0})
	assert.Equal(t, "app.b.c.B", pt.QualifiedName(b.ID))
	assert.Equal(t, "app.b.c.B.N", pt.QualifiedName(pt.Members(b.ID, "N")[0]))

	unit, ok := pt.UnitByPath("b.yaml")
	require.True(t, ok)
	assert.Same(t, units[2], unit)
	assert.Same(t, units[1], pt.Unit(1))
}

func TestLinkReportsConflicts(t *testing.T) {
	rep := report.NewReporter(report.LogLevelSilent)
	units := []*CompilationUnit{
		Collect(0, parseFile(t, "x.yaml", "package: p\ndecls: [{kind: class, name: Foo}]"), rep),
		Collect(1, parseFile(t, "y.yaml", "package: p\ndecls: [{kind: fun, name: Foo}, {kind: class, name: Bar}]"), rep),
		Collect(2, parseFile(t, "z.yaml", "package: q\ndecls: [{kind: class, name: Foo}]"), rep),
	}

	pt := Link(units, rep)

	diags := rep.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, report.KindDuplicateDeclaration, diags[0].Kind)
	assert.Equal(t, "y.yaml", diags[0].Path)

	// The declaration of the first unit keeps the slot.
	pkg, _ := pt.Package("p")
	assert.Equal(t, []DeclID{{0, 0}}, pkg.Lookup("Foo"))
	assert.Equal(t, []DeclID{{1, 1}}, pkg.Lookup("Bar"))

	// Other packages are unaffected.
	q, _ := pt.Package("q")
	assert.Len(t, q.Lookup("Foo"), 1)
}

func TestRootPackageQualifiedName(t *testing.T) {
	rep := report.NewReporter(report.LogLevelSilent)
	units := []*CompilationUnit{
		Collect(0, parseFile(t, "r.yaml", "decls: [{kind: class, name: R}]"), rep),
	}

	pt := Link(units, rep)
	assert.Equal(t, "R", pt.QualifiedName(DeclID{0, 0}))

	pkg, ok := pt.Package("")
	require.True(t, ok)
	assert.Len(t, pkg.Lookup("R"), 1)
}

func TestUniverse(t *testing.T) {
	files, err := LoadUniverse()
	require.NoError(t, err)
	require.Len(t, files, 2)

	rep := report.NewReporter(report.LogLevelSilent)
	units := make([]*CompilationUnit, len(files))
	for i, file := range files {
		units[i] = Collect(int32(i), file, rep)
		assert.True(t, units[i].IsUniverse())
	}

	pt := Link(units, rep)
	assert.False(t, rep.AnyErrors())

	std, ok := pt.Package("std")
	require.True(t, ok)
	assert.Len(t, std.Lookup("Int"), 1)
	assert.Len(t, std.Lookup("println"), 2)

	printFn := pt.Decl(std.Lookup("println")[0])
	require.Len(t, printFn.Params, 1)
	assert.True(t, printFn.Params[0].Nullable)
	assert.Equal(t, []string{"Any"}, printFn.Params[0].Path)

	coll, ok := pt.Package("std.collections")
	require.True(t, ok)
	assert.Len(t, coll.Lookup("List"), 1)
	assert.True(t, pt.IsPackage("std"))
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("abc_1"))
	assert.True(t, IsValidIdentifier("_x"))
	assert.False(t, IsValidIdentifier("1x"))
	assert.False(t, IsValidIdentifier(""))
	assert.False(t, IsValidIdentifier("a-b"))

	assert.True(t, IsValidPackageName("a.b.c"))
	assert.True(t, IsValidPackageName(""))
	assert.False(t, IsValidPackageName("a..b"))
}
