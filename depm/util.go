package depm

import "strings"

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, package segment, declaration name, etc.).
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}

// IsValidPackageName returns whether name is a valid dotted package
// designation.  The empty string designates the root package.
func IsValidPackageName(name string) bool {
	if name == "" {
		return true
	}

	for _, seg := range strings.Split(name, ".") {
		if !IsValidIdentifier(seg) {
			return false
		}
	}

	return true
}
