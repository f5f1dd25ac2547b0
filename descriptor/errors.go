package descriptor

import "fmt"

// Error is returned for any descriptor grammar rejection (spec §7's
// BadDescriptor kind, mirrored here since this package has no dependency
// on classfile's error types). source is the full descriptor string being
// parsed when the failure occurred, for diagnostics.
type Error struct {
	Source string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("descriptor: bad descriptor %q: %s", e.Source, e.Detail)
}

func errBadDescriptor(source, detail string) error {
	return &Error{Source: source, Detail: detail}
}
