package reprise

import "testing"

// MustDecode decodes text with c into target, failing the test on error.
//
// It exists for generated regression tests: appended test functions cannot
// add imports to the file they land in, so all decoding at replay time
// funnels through this one helper.
func MustDecode(tb testing.TB, c Codec, text string, target any) {
	tb.Helper()
	if err := c.Decode(text, target); err != nil {
		tb.Fatalf("could not decode %s payload: %v", c.Name(), err)
	}
}

// MustDecodeArgs decodes an argument payload for ex, failing the test on
// error. The argument type is inferred from the operation's method set, so
// generated tests never have to spell it out.
func MustDecodeArgs[A, R any](tb testing.TB, c Codec, ex Executable[A, R], text string) A {
	tb.Helper()
	var args A
	if err := c.Decode(text, &args); err != nil {
		tb.Fatalf("could not decode %s arguments for %s: %v", c.Name(), ex.FullPath(), err)
	}
	return args
}
