package common

import (
	"path"
	"strings"
)

// PkgAlias guesses the package name an import path is referred to by when the
// import spec carries no explicit alias.
//
//	"github.com/google/uuid"             -> "uuid"
//	"github.com/vmihailenco/msgpack/v5"  -> "msgpack"
//	"gopkg.in/yaml.v3"                   -> "yaml"
//	"github.com/mattn/go-isatty"         -> "isatty"
//
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(pkgPath))
	}

	if i := strings.Index(base, ".v"); i > 0 && isDigits(base[i+2:]) {
		base = base[:i]
	}

	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")

	return strings.ReplaceAll(base, "-", "")
}

func isMajorVersion(s string) bool {
	return len(s) > 1 && s[0] == 'v' && isDigits(s[1:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
