//go:build !debug

// Package debug checks the caller contracts of bui: bitmap depth and palette
// size, pops and deallocations past the start of a room frame, misaligned
// room handles and typed text beyond the keyboard capacity. Built with the
// debug tag a violation panics with a "bui: " prefix. Release builds drop the
// checks, and clipping and drawing keep their silent behaviour.
package debug

// Enabled reports whether assertions are compiled in. Checks that cost more
// than a comparison belong in an `if debug.Enabled {...}` block.
const Enabled = false

// Assert panics with message if b is false.
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}
