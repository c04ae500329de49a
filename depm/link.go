package depm

import (
	"sort"
	"strings"

	"declres/report"
	"declres/util"
)

// Package is an entry of the package table: the merged top-level
// declarations of every compilation unit with the same package designation.
type Package struct {
	Name string

	// Units is the list of units of the package in unit order.
	Units []*CompilationUnit

	// members maps simple names to top-level declarations.
	members map[string][]DeclID
}

// Lookup returns the top-level declarations of the package named name.
func (pkg *Package) Lookup(name string) []DeclID {
	return pkg.members[name]
}

// Names returns the sorted list of top-level names of the package.
func (pkg *Package) Names() []string {
	names := make([]string, 0, len(pkg.members))
	for name := range pkg.members {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// PackageTable maps package designations to their merged declarations.  It
// is built once by the linker and is read-only afterward so it can be shared
// by all resolution workers without locking.
type PackageTable struct {
	units    []*CompilationUnit
	packages map[string]*Package

	// prefixes is the set of all package names and all their dotted
	// prefixes: eg. `a.b.c` contributes `a`, `a.b` and `a.b.c`.
	prefixes map[string]struct{}
}

// Link merges the collected compilation units into a package table.  The
// units must be ordered by index.  Conflicting top-level names within a
// package are reported: the declaration from the earliest unit keeps its slot.
func Link(units []*CompilationUnit, rep *report.Reporter) *PackageTable {
	pt := &PackageTable{
		units:    units,
		packages: make(map[string]*Package),
		prefixes: make(map[string]struct{}),
	}

	for _, unit := range units {
		pkg, ok := pt.packages[unit.Package]
		if !ok {
			pkg = &Package{
				Name:    unit.Package,
				members: make(map[string][]DeclID),
			}

			pt.packages[unit.Package] = pkg
			pt.addPrefixes(unit.Package)
		}

		pkg.Units = append(pkg.Units, unit)

		for _, id := range unit.TopLevel {
			decl := unit.Decls[id.Index]

			// Skip declarations that already failed collection.
			if !util.Contains(unit.Lookup(NoDecl, decl.Name), id) {
				continue
			}

			existing := pkg.members[decl.Name]
			if len(existing) > 0 {
				first := pt.Decl(existing[0])

				// Collisions within the unit were already handled by the
				// collector.
				if first.Unit != unit && !CanOverload(first, decl) {
					rep.Errorf(
						report.KindDuplicateDeclaration,
						unit.Path,
						decl.Span,
						"%s `%s` conflicts with %s declared in `%s` at %s",
						decl.Kind, decl.Name, first.Kind, first.Unit.Path, first.Span,
					)

					continue
				}
			}

			pkg.members[decl.Name] = append(existing, id)
		}
	}

	return pt
}

// addPrefixes adds a package name and all of its prefixes to the prefix set.
func (pt *PackageTable) addPrefixes(name string) {
	for {
		pt.prefixes[name] = struct{}{}

		dot := strings.LastIndexByte(name, '.')
		if dot < 0 {
			return
		}

		name = name[:dot]
	}
}

// -----------------------------------------------------------------------------

// Units returns the compilation units of the table in index order.
func (pt *PackageTable) Units() []*CompilationUnit {
	return pt.units
}

// Unit returns the compilation unit with the given index.
func (pt *PackageTable) Unit(index int32) *CompilationUnit {
	return pt.units[index]
}

// UnitByPath returns the compilation unit with the given path.
func (pt *PackageTable) UnitByPath(path string) (*CompilationUnit, bool) {
	for _, unit := range pt.units {
		if unit.Path == path {
			return unit, true
		}
	}

	return nil, false
}

// Decl returns the declaration with the given ID.
func (pt *PackageTable) Decl(id DeclID) *Declaration {
	return pt.units[id.Unit].Decls[id.Index]
}

// Package returns the table entry of the named package.
func (pt *PackageTable) Package(name string) (*Package, bool) {
	pkg, ok := pt.packages[name]
	return pkg, ok
}

// Packages returns the sorted list of package names.
func (pt *PackageTable) Packages() []string {
	names := make([]string, 0, len(pt.packages))
	for name := range pt.packages {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// IsPackage returns whether name is a known package or a prefix of one.
func (pt *PackageTable) IsPackage(name string) bool {
	_, ok := pt.prefixes[name]
	return ok
}

// Members returns the declarations named name nested directly inside the
// declaration with the given ID.
func (pt *PackageTable) Members(id DeclID, name string) []DeclID {
	return pt.units[id.Unit].Lookup(id, name)
}

// QualifiedName returns the fully qualified name of a declaration: its
// package followed by the names of its enclosing declarations.
func (pt *PackageTable) QualifiedName(id DeclID) string {
	unit := pt.units[id.Unit]

	var segs []string
	for ; id.Valid(); id = unit.Decls[id.Index].Parent {
		segs = append(segs, unit.Decls[id.Index].Name)
	}

	if unit.Package != "" {
		segs = append(segs, unit.Package)
	}

	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}

	return strings.Join(segs, ".")
}
