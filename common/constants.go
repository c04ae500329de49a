package common

// DeclresVersion is the current declres version as a string.
const DeclresVersion string = "0.1.0"

// ModuleFileName is the name of the module manifest file.
const ModuleFileName string = "declres-mod.toml"

// SkeletonFileExt is the file extension of a declaration skeleton file.
const SkeletonFileExt string = ".yaml"

// UniversePath is the representative path of the synthetic compilation unit
// holding the built-in declarations.
const UniversePath string = "<universe>"

// DefaultImports is the list of star imports implicitly present in every
// compilation unit unless the module overrides them.
var DefaultImports = []string{"std.*", "std.collections.*"}
