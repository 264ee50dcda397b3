package stringutils

import "regexp"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsSafeIdentifier reports whether s can be interpolated into SQL as a bare
// table or column identifier.
func IsSafeIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
