package rest

import "regexp"

// callbackPattern is the grammar of a bare identifier-like function
// reference: letters, digits, dot, underscore, and dollar, not starting
// with a digit.
var callbackPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_.$]*$`)

// ValidCallback reports whether name is usable as a JSONP callback. The
// name ends up verbatim in an executable response body, so anything beyond
// a plain function reference is rejected.
func ValidCallback(name string) bool {
	return callbackPattern.MatchString(name)
}
