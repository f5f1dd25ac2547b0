package classfile

import (
	"os"

	jlog "github.com/go-jclass/jclass/internal/log"
)

// defaultMaxRecursionDepth bounds annotation nesting per spec §5's
// "Recursion bound" requirement, guarding against adversarial inputs
// (deeply nested annotation trees) without converting the recursive-descent
// parser to an explicit stack. Descriptor nesting is bounded separately, by
// the maxDepth argument of the descriptor package's parsers.
const defaultMaxRecursionDepth = 255

// Options configures a parse, mirroring the shape of saferwall/pe's
// Options struct (pe.go): a handful of defaulted knobs plus a logger
// override, threaded through Open/Parse.
type Options struct {
	// MaxRecursionDepth bounds nested annotation element values. Zero means
	// defaultMaxRecursionDepth.
	MaxRecursionDepth int

	// PermissiveAttributes, when true, retains an attribute with an
	// unrecognized name as UnknownAttribute instead of failing the parse.
	// Defaults to false: spec §9 documents the strict behavior as the
	// chosen default, since forward-compatibility with unreleased class
	// file versions is explicitly out of this decoder's scope.
	PermissiveAttributes bool

	// Logger receives Debug/Info/Warn/Error records. A nil Logger gets a
	// stderr logger filtered to LevelError, matching pe.New's default.
	Logger jlog.Logger
}

func (o *Options) maxRecursionDepth() int {
	if o == nil || o.MaxRecursionDepth <= 0 {
		return defaultMaxRecursionDepth
	}
	return o.MaxRecursionDepth
}

func (o *Options) permissiveAttributes() bool {
	return o != nil && o.PermissiveAttributes
}

func (o *Options) helper() *jlog.Helper {
	if o != nil && o.Logger != nil {
		return jlog.NewHelper(o.Logger)
	}
	logger := jlog.NewStdLogger(os.Stderr)
	return jlog.NewHelper(jlog.NewFilter(logger, jlog.FilterLevel(jlog.LevelError)))
}
