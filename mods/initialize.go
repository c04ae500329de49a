package mods

import (
	"os"
	"path/filepath"

	"declres/common"
	"declres/depm"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// InitModule creates a new module with the given name at the given path.
func InitModule(name, path string) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return errors.Wrap(err, "module file error")
	}

	// validate module name
	if !depm.IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:    name,
		Version: common.DeclresVersion,
		Sources: DefaultSourcePatterns,
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return errors.Wrap(err, "error creating module file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return errors.Wrap(err, "error encoding TOML")
	}

	return nil
}
