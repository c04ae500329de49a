package resolve

import (
	"runtime"

	"declres/ast"
	"declres/common"
	"declres/depm"
	"declres/report"
	"declres/syntax"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Options configures a resolution run.
type Options struct {
	// Workers is the maximum number of units processed concurrently.  Zero
	// selects GOMAXPROCS.
	Workers int

	// DefaultImports is the list of star imports forming the Root level of
	// every unit.  Nil selects common.DefaultImports.
	DefaultImports []string

	// Reporter receives all the diagnostics of the run.  If nil, a silent
	// reporter is used.
	Reporter *report.Reporter

	// Phases is notified of the beginning and end of each phase.  May be nil.
	Phases PhaseObserver

	// RunID identifies the run.  A new ID is generated for each run if it
	// is zero.
	RunID uuid.UUID
}

// PhaseObserver observes the phases of a run.
type PhaseObserver interface {
	BeginPhase(name string)
	EndPhase(success bool)
}

// Engine resolves sets of compilation units.
type Engine struct {
	opts Options
}

// NewEngine creates a new engine.
func NewEngine(opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	if opts.DefaultImports == nil {
		opts.DefaultImports = common.DefaultImports
	}

	if opts.Reporter == nil {
		opts.Reporter = report.NewReporter(report.LogLevelSilent)
	}

	return &Engine{opts: opts}
}

// Run resolves a set of compilation units along with the built-in packages.
// Resolution errors are reported as diagnostics: the returned error is only
// set if the run could not take place.
func (eng *Engine) Run(files []*ast.File) (*Result, error) {
	rep := eng.opts.Reporter

	runID := eng.opts.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}

	defaults, err := parseDefaultImports(eng.opts.DefaultImports)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if !depm.IsValidPackageName(file.Package) {
			return nil, errors.Errorf("%s: invalid package name `%s`", file.Path, file.Package)
		}
	}

	universe, err := depm.LoadUniverse()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the built-in packages")
	}

	allFiles := make([]*ast.File, 0, len(universe)+len(files))
	allFiles = append(allFiles, universe...)
	allFiles = append(allFiles, files...)

	// Stage 1: collection of each unit followed by linking.
	eng.beginPhase("Collecting")

	units := make([]*depm.CompilationUnit, len(allFiles))
	eng.parallel(len(allFiles), func(i int) {
		units[i] = depm.Collect(int32(i), allFiles[i], rep)
	})

	eng.endPhase(true)
	eng.beginPhase("Linking")

	table := depm.Link(units, rep)

	root, missing := resolveDefaultImports(table, defaults)
	if len(missing) > 0 {
		eng.endPhase(false)
		return nil, errors.Errorf("default import `%s.*` does not name a package or classifier", missing[0].QualifiedName())
	}

	eng.endPhase(true)

	// Stage 2: scopes, imports and references of each unit.
	eng.beginPhase("Resolving")

	r := &Resolver{
		table: table,
		files: make([]*FileResult, len(units)),
		cache: NewExpansionCache(),
	}

	eng.parallel(len(units), func(i int) {
		fr := newFileResult(units[i])
		fr.Imports = resolveImports(table, units[i], rep)
		buildScopes(table, fr, root)
		r.files[i] = fr
	})

	// Supertypes and alias bodies are computed in declaration order before
	// any reference so that the shared caches do not depend on scheduling.
	for _, unit := range units {
		for _, decl := range unit.Decls {
			r.declare(decl, rep)
		}
	}

	eng.parallel(len(units), func(i int) {
		r.resolveUnit(r.files[i], rep)
	})

	eng.endPhase(!rep.AnyErrors())

	return &Result{
		ID:          runID,
		Table:       table,
		Files:       r.files[len(universe):],
		Builtins:    r.files[:len(universe)],
		Cache:       r.cache,
		Diagnostics: rep.Diagnostics(),
		resolver:    r,
	}, nil
}

// parallel runs f for each index in [0, n) on at most Workers goroutines.
func (eng *Engine) parallel(n int, f func(i int)) {
	g := errgroup.Group{}
	g.SetLimit(eng.opts.Workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			f(i)
			return nil
		})
	}

	// The workers never fail.
	_ = g.Wait()
}

func (eng *Engine) beginPhase(name string) {
	if eng.opts.Phases != nil {
		eng.opts.Phases.BeginPhase(name)
	}
}

func (eng *Engine) endPhase(success bool) {
	if eng.opts.Phases != nil {
		eng.opts.Phases.EndPhase(success)
	}
}

// parseDefaultImports parses the default imports: they must be star imports.
func parseDefaultImports(defaults []string) ([]*ast.Import, error) {
	var imps []*ast.Import

	for _, src := range defaults {
		imp, err := syntax.ParseImport(src, 0, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid default import `%s`", src)
		}

		if !imp.Star {
			return nil, errors.Errorf("default import `%s` must be a star import", src)
		}

		imps = append(imps, imp)
	}

	return imps, nil
}

// -----------------------------------------------------------------------------

// declare resolves the supertypes of a classifier and expands a type alias
// with its own type parameters so that cycles are reported at the alias
// even if it is never referenced.
func (r *Resolver) declare(decl *depm.Declaration, rep *report.Reporter) {
	switch {
	case decl.HasMembers():
		r.Supertypes(decl.ID, env{})
	case decl.Kind == ast.DeclTypeAlias:
		if _, ee := r.expand(decl.ID, r.typeParamTypes(decl), env{}); ee != nil && ee.involves(decl.ID) {
			rep.Errorf(report.KindCyclicTypeAlias, decl.Unit.Path, decl.Span, "%s", ee.msg)
		}
	}
}

// resolveUnit resolves every reference made in a unit.  Errors attached to
// the outcomes are reported except for cyclic alias errors which are
// reported at the aliases themselves.
func (r *Resolver) resolveUnit(fr *FileResult, rep *report.Reporter) {
	path := fr.Unit.Path

	for _, decl := range fr.Unit.Decls {
		site := decl.ID
		sink := func(o *Outcome) {
			o.Site = site
			fr.Outcomes = append(fr.Outcomes, o)
		}

		header, body := fr.Headers[site], fr.Bodies[site]

		for _, tp := range decl.TypeParams {
			if tp.Bound != nil {
				r.convert(path, tp.Bound, header, NSType, env{}, sink)
			}
		}

		for _, tr := range decl.Supertypes {
			r.convert(path, tr, header, NSType, env{}, sink)
		}

		if decl.Aliased != nil {
			r.convert(path, decl.Aliased, header, NSType, env{}, sink)
		}

		for _, tr := range decl.Params {
			r.convert(path, tr, body, NSType, env{}, sink)
		}

		if decl.Returns != nil {
			r.convert(path, decl.Returns, body, NSType, env{}, sink)
		}

		if decl.Type != nil {
			r.convert(path, decl.Type, body, NSType, env{}, sink)
		}

		for _, tr := range decl.Refs {
			r.convert(path, tr, body, NSAny, env{}, sink)
		}
	}

	for _, o := range fr.Outcomes {
		if o.Err != nil && o.Err.Kind != report.KindCyclicTypeAlias {
			rep.Report(o.Err)
		}
	}
}
