package filter

import "strings"

// IsSafeRelative reports whether uri is a safe path relative to the
// library root: non-empty, no leading slash, no empty segments and no
// "." or ".." segments.
func IsSafeRelative(uri string) bool {
	if uri == "" {
		return false
	}
	for _, segment := range strings.Split(uri, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}
	return true
}
