package classfile

import "unicode/utf8"

// decodeUTF8 validates raw as UTF-8 and returns it as a string.
//
// The teacher's UTF-16 helper (golang.org/x/text/encoding/unicode, used by
// saferwall/pe's helper.go for version-resource strings) has no bearing
// here: a Utf8 constant's payload is, per spec §1's Non-goals, decoded as
// plain UTF-8 with no modified-UTF-8 nuance, and no library in the
// retrieved pack does UTF-8 *validation* any more idiomatically than the
// standard library's utf8.Valid — this is the one place this module
// reaches for the standard library over a pack dependency, justified in
// DESIGN.md.
func decodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}
