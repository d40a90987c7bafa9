package advanced

import "github.com/pkg/errors"

// Threading errors through the recursive retriangulation and the mesh walks
// would add a return value to every signature for failures that almost never
// happen. Internals panic with a cdtError instead, and the public entry
// points recover and return it.

// Error kinds reported by the engine.
var (
	// ErrConstraintsCross is returned when an inserted constraint edge
	// crosses an earlier fixed edge anywhere but at a shared vertex.
	ErrConstraintsCross = errors.New("constraint edges cross")
	// ErrDegenerate is the error kind for pathologically degenerate input.
	// No operation of this package returns it: when point location cannot
	// resolve a containing triangle it splits the closest edge instead.
	ErrDegenerate = errors.New("triangulation is degenerate")
)

type cdtError struct{ error }

// fatalf panics with a cdtError. Reserved for conditions that indicate a
// corrupted mesh or input outside the engine's contract.
func fatalf(format string, args ...interface{}) {
	panic(cdtError{errors.Errorf(format, args...)})
}

// throwf panics with a wrapped error kind.
func throwf(err error, format string, args ...interface{}) {
	panic(cdtError{errors.Wrapf(err, format, args...)})
}

// handlePanic converts an engine panic back into an error. Foreign panics
// are re-raised.
func handlePanic(r interface{}, err *error) {
	if r == nil {
		return
	}
	if cdtErr, ok := r.(cdtError); ok {
		*err = cdtErr.error
		return
	}
	panic(r)
}
