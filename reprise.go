// Package reprise turns failing executions into ready-to-run regression tests.
//
// Any operation wrapped in an Executable can be passed to Run. When the
// execution fails, Run wraps the error, the arguments, and a pre-invocation
// snapshot of the operation in a Capture. The Capture renders to a complete
// Go test function that re-decodes the snapshot and arguments and asserts
// that the execution no longer fails. Rendered tests are appended to a test
// file, so failures accumulate as independent regression tests.
//
// Operations must be value-like: their full state round-trips through a
// Codec with no loss. State shared through pointers or reachable only via
// aliasing is unsupported, because no codec can preserve reference identity
// across an encode/decode boundary. Operations holding such state should be
// redesigned to own their state directly.
package reprise

import "time"

// Executable is the contract an operation must satisfy to be capturable.
//
// A is the argument type of one invocation, R the success result type.
// Execute is the only mutating method; Run attempts it at most once per
// call. Clone must produce an independent copy whose encoded form equals
// the original's.
type Executable[A, R any] interface {
	// FullPath returns the type reference emitted verbatim into generated
	// source, e.g. "demo.ImportantAction". It must be constant per concrete
	// type and resolvable in the target test file's scope.
	FullPath() string

	// Description returns free-form intent text. It only appears in the
	// documentation header of the generated test.
	Description() string

	// Clone returns an independent duplicate of the operation's state.
	Clone() Executable[A, R]

	// Execute performs the operation's effect. It may mutate the receiver
	// and may fail.
	Execute(args A) (R, error)
}

// Capture is a regression-test-in-the-making: the error an execution
// produced, the arguments that triggered it, the operation's state from
// before the failing call, and when it happened.
//
// A Capture is built once by Run and consumed once, either by Render /
// AppendToFile or by converting it to a Record for storage.
type Capture[A, R any] struct {
	// Err is the failure the execution returned.
	Err error

	// Args is a copy of the arguments used for the failing invocation.
	Args A

	// Snapshot holds the operation's state from before the failing call.
	Snapshot Executable[A, R]

	// Time is when the failure was captured. It also keys the generated
	// test name, at millisecond resolution.
	Time time.Time
}

// Run invokes ex with args, capturing the failure if there is one.
//
// The operation is cloned before every invocation, success or failure,
// because after a failed Execute the operation's state may be partially
// mutated and is no longer reliable for reproduction. On success the clone
// is discarded and the result returned with a nil Capture; on failure the
// zero result is returned together with the Capture.
func Run[A, R any](ex Executable[A, R], args A) (R, *Capture[A, R]) {
	snapshot := ex.Clone()
	result, err := ex.Execute(args)
	if err == nil {
		return result, nil
	}
	var zero R
	return zero, &Capture[A, R]{
		Err:      err,
		Args:     args,
		Snapshot: snapshot,
		Time:     time.Now().UTC(),
	}
}
