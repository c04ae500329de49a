package resolve

import (
	"declres/ast"
	"declres/depm"
	"declres/report"
)

// resolveImports resolves the import directives of a unit against the
// package table.  Unresolvable targets and conflicting bindings are reported;
// the first directive binding a name keeps it, whether it resolves or not.
func resolveImports(table *depm.PackageTable, unit *depm.CompilationUnit, rep *report.Reporter) *ImportSet {
	is := &ImportSet{Bindings: make(map[string]*Binding)}
	bound := make(map[string]*depm.ImportDirective)

	for _, idir := range unit.Imports {
		if idir.Kind == depm.ImportStar {
			if st, ok := resolveStarTarget(table, idir); ok {
				is.Stars = append(is.Stars, st)
			} else {
				rep.Errorf(
					report.KindUnresolvedImport,
					unit.Path,
					idir.Span,
					"no package or classifier named `%s`",
					idir.QualifiedName(),
				)
			}

			continue
		}

		// The name is bound even if the target fails to resolve.
		name := idir.BoundName()
		if prev, ok := bound[name]; ok {
			rep.Errorf(
				report.KindDuplicateImportBinding,
				unit.Path,
				idir.Span,
				"name `%s` is already bound by the import of `%s` at %s",
				name,
				prev,
				prev.Span,
			)

			continue
		}

		bound[name] = idir

		targets := findQualified(table, idir.Path)
		if len(targets) == 0 {
			rep.Errorf(
				report.KindUnresolvedImport,
				unit.Path,
				idir.Span,
				"unable to resolve import of `%s`",
				idir.QualifiedName(),
			)

			continue
		}

		is.Bindings[name] = &Binding{Directive: idir, Targets: targets}
	}

	return is
}

// resolveStarTarget resolves the namespace opened by a star import.  A name
// which is only the prefix of known packages opens an empty package.
func resolveStarTarget(table *depm.PackageTable, idir *depm.ImportDirective) (*StarTarget, bool) {
	qualName := idir.QualifiedName()

	if pkg, ok := table.Package(qualName); ok {
		return &StarTarget{Directive: idir, Package: pkg, Classifier: depm.NoDecl}, true
	}

	if table.IsPackage(qualName) {
		return &StarTarget{Directive: idir, Package: &depm.Package{Name: qualName}, Classifier: depm.NoDecl}, true
	}

	targets := findQualified(table, idir.Path)
	if len(targets) == 1 && table.Decl(targets[0]).HasMembers() {
		return &StarTarget{Directive: idir, Classifier: targets[0]}, true
	}

	return nil, false
}

// resolveDefaultImports resolves the default star imports forming the Root
// level shared by all units.
func resolveDefaultImports(table *depm.PackageTable, defaults []*ast.Import) (*Scope, []*depm.ImportDirective) {
	root := &Scope{Kind: ScopeRoot, Owner: depm.NoDecl}

	var missing []*depm.ImportDirective
	for _, imp := range defaults {
		idir := &depm.ImportDirective{Kind: depm.ImportStar, Path: imp.Path, Span: imp.Span}
		if st, ok := resolveStarTarget(table, idir); ok {
			root.Stars = append(root.Stars, st)
		} else {
			missing = append(missing, idir)
		}
	}

	return root, missing
}

// -----------------------------------------------------------------------------

// findQualified resolves a fully qualified name against the package table:
// the longest package prefix whose next segment is a top-level declaration
// is taken and the remaining segments are looked up as nested members.  All
// the overloads are returned if the name denotes a function.
func findQualified(table *depm.PackageTable, path []string) []depm.DeclID {
	for k := len(path) - 1; k >= 0; k-- {
		pkg, ok := table.Package(ast.JoinPath(path[:k]))
		if !ok {
			continue
		}

		ids := pkg.Lookup(path[k])
		for _, seg := range path[k+1:] {
			if len(ids) != 1 || !table.Decl(ids[0]).HasMembers() {
				ids = nil
				break
			}

			ids = table.Members(ids[0], seg)
		}

		if len(ids) > 0 {
			return ids
		}
	}

	return nil
}
