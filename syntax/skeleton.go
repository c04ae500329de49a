package syntax

import (
	"bytes"
	"io"
	"os"

	"declres/ast"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlString is a scalar that remembers where it was written so that the
// strings parsed out of it get accurate spans.
type yamlString struct {
	Value string

	// The zero-indexed line and column of the first character of Value.
	Line, Col int
}

func (ys *yamlString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("%d:%d: expected a scalar", node.Line, node.Column)
	}

	ys.Value = node.Value
	ys.Line = node.Line - 1
	ys.Col = node.Column - 1

	// Skip the opening quote.
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		ys.Col++
	}

	return nil
}

// yamlFile is a compilation unit skeleton as it is encoded in YAML.
type yamlFile struct {
	Package string        `yaml:"package"`
	Imports []*yamlString `yaml:"imports"`
	Decls   []*yamlDecl   `yaml:"decls"`
}

// yamlDecl is a declaration skeleton as it is encoded in YAML.
type yamlDecl struct {
	Kind       yamlString    `yaml:"kind"`
	Name       yamlString    `yaml:"name"`
	Inner      bool          `yaml:"inner"`
	TypeParams []*yamlString `yaml:"type-params"`
	Supertypes []*yamlString `yaml:"supertypes"`
	Type       *yamlString   `yaml:"type"`
	Params     []*yamlString `yaml:"params"`
	Returns    *yamlString   `yaml:"returns"`
	Refs       []*yamlString `yaml:"refs"`
	Decls      []*yamlDecl   `yaml:"decls"`
}

// LoadSkeleton reads and parses the skeleton file at path.
func LoadSkeleton(path string) (*ast.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open skeleton file `%s`", path)
	}
	defer f.Close()

	buff, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading skeleton file `%s`", path)
	}

	return ParseSkeleton(path, buff)
}

// ParseSkeleton parses the skeleton of the compilation unit identified by
// path from its YAML encoding.
func ParseSkeleton(path string, data []byte) (*ast.File, error) {
	yf := &yamlFile{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(yf); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "error parsing skeleton file `%s`", path)
	}

	file := &ast.File{Path: path, Package: yf.Package}

	for _, yimp := range yf.Imports {
		imp, err := ParseImport(yimp.Value, yimp.Line, yimp.Col)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: bad import `%s`", path, yimp.Value)
		}

		file.Imports = append(file.Imports, imp)
	}

	for _, yd := range yf.Decls {
		decl, err := convertDecl(yd, nil)
		if err != nil {
			return nil, errors.Wrap(err, path)
		}

		file.Decls = append(file.Decls, decl)
	}

	return file, nil
}

// -----------------------------------------------------------------------------

// convertDecl converts a YAML declaration into a skeleton declaration.  The
// parent is nil for top-level declarations.
func convertDecl(yd *yamlDecl, parent *ast.Decl) (*ast.Decl, error) {
	if yd.Name.Value == "" {
		return nil, errors.Errorf("%d:%d: declaration is missing a name", yd.Kind.Line+1, yd.Kind.Col+1)
	}

	kind, ok := ast.DeclKindFromString(yd.Kind.Value)
	if !ok {
		return nil, errors.Errorf("%d:%d: unknown declaration kind `%s`", yd.Kind.Line+1, yd.Kind.Col+1, yd.Kind.Value)
	}

	nameTok := NewLexer(yd.Name.Value, yd.Name.Line, yd.Name.Col)
	decl := &ast.Decl{
		Kind:     kind,
		Name:     yd.Name.Value,
		NameSpan: nameTok.spanOf(0, len([]rune(yd.Name.Value))),
		Inner:    yd.Inner,
	}

	// Check the shape of the declaration against its kind.
	switch kind {
	case ast.DeclEnumEntry:
		if parent == nil || parent.Kind != ast.DeclEnum {
			return nil, declErrorf(yd, "enum entry `%s` must be declared inside an enum", decl.Name)
		}
	case ast.DeclTypeAlias:
		if yd.Type == nil {
			return nil, declErrorf(yd, "type alias `%s` is missing its type", decl.Name)
		}
	case ast.DeclProperty:
		if len(yd.TypeParams) > 0 {
			return nil, declErrorf(yd, "property `%s` cannot declare type parameters", decl.Name)
		}
	case ast.DeclClass, ast.DeclInterface, ast.DeclObject, ast.DeclEnum, ast.DeclFunction:
	}

	if len(yd.Decls) > 0 && !canContainDecls(kind) {
		return nil, declErrorf(yd, "%s `%s` cannot contain declarations", kind, decl.Name)
	}

	if decl.Inner && (kind != ast.DeclClass || parent == nil) {
		return nil, declErrorf(yd, "only nested classes can be inner")
	}

	var err error
	for _, ytp := range yd.TypeParams {
		tp, err := ParseTypeParam(ytp.Value, ytp.Line, ytp.Col)
		if err != nil {
			return nil, err
		}

		decl.TypeParams = append(decl.TypeParams, tp)
	}

	if decl.Supertypes, err = parseTypeRefs(yd.Supertypes); err != nil {
		return nil, err
	}

	if yd.Type != nil {
		tr, err := ParseTypeRef(yd.Type.Value, yd.Type.Line, yd.Type.Col)
		if err != nil {
			return nil, err
		}

		if kind == ast.DeclTypeAlias {
			decl.Aliased = tr
		} else {
			decl.Type = tr
		}
	}

	if decl.Params, err = parseTypeRefs(yd.Params); err != nil {
		return nil, err
	}

	if yd.Returns != nil {
		if decl.Returns, err = ParseTypeRef(yd.Returns.Value, yd.Returns.Line, yd.Returns.Col); err != nil {
			return nil, err
		}
	}

	if decl.Refs, err = parseTypeRefs(yd.Refs); err != nil {
		return nil, err
	}

	for _, ysub := range yd.Decls {
		sub, err := convertDecl(ysub, decl)
		if err != nil {
			return nil, err
		}

		decl.Decls = append(decl.Decls, sub)
	}

	return decl, nil
}

// parseTypeRefs parses a list of type expressions.
func parseTypeRefs(ystrs []*yamlString) ([]*ast.TypeRef, error) {
	var trs []*ast.TypeRef

	for _, ys := range ystrs {
		tr, err := ParseTypeRef(ys.Value, ys.Line, ys.Col)
		if err != nil {
			return nil, err
		}

		trs = append(trs, tr)
	}

	return trs, nil
}

// declErrorf creates an error positioned at the name of a declaration.
func declErrorf(yd *yamlDecl, msg string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(msg, args...), "%d:%d", yd.Name.Line+1, yd.Name.Col+1)
}

// canContainDecls returns whether declarations of kind may contain nested
// declarations.
func canContainDecls(kind ast.DeclKind) bool {
	switch kind {
	case ast.DeclClass, ast.DeclInterface, ast.DeclObject, ast.DeclEnum, ast.DeclFunction:
		return true
	default:
		return false
	}
}
