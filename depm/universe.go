package depm

import (
	"embed"
	"path"
	"strings"

	"declres/ast"
	"declres/common"
	"declres/syntax"

	"github.com/pkg/errors"
)

//go:embed universe/*.yaml
var universeFS embed.FS

// universeFiles lists the skeletons of the built-in packages in the order
// their compilation units are created.
var universeFiles = []string{"std.yaml", "collections.yaml"}

// LoadUniverse parses the skeletons of the built-in packages.  The returned
// files must be collected before any user unit so that built-in declarations
// occupy the first unit indices.
func LoadUniverse() ([]*ast.File, error) {
	var files []*ast.File

	for _, name := range universeFiles {
		data, err := universeFS.ReadFile(path.Join("universe", name))
		if err != nil {
			return nil, errors.Wrapf(err, "missing universe file `%s`", name)
		}

		file, err := syntax.ParseSkeleton(path.Join(common.UniversePath, name), data)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}

// IsUniverse returns whether the unit holds built-in declarations.
func (cu *CompilationUnit) IsUniverse() bool {
	return strings.HasPrefix(cu.Path, common.UniversePath+"/")
}
