// Package sweep drives an Executable across candidate arguments, stopping
// at the first failure. It is the thin harness around reprise.Run; argument
// generation itself stays with the caller.
package sweep

import "reprise"

// First runs each candidate against a fresh instance and returns the first
// capture, or nil when every candidate passes.
//
// fresh must return an independent instance per call so a failing run never
// leaks mutated state into the next candidate.
func First[A, R any](fresh func() reprise.Executable[A, R], candidates []A) *reprise.Capture[A, R] {
	for _, args := range candidates {
		if _, c := reprise.Run(fresh(), args); c != nil {
			return c
		}
	}
	return nil
}
