//go:build debug

package debug

// Enabled reports whether assertions are compiled in. Checks that cost more
// than a comparison belong in an `if debug.Enabled {...}` block.
const Enabled = true

// Assert panics with message if b is false.
func Assert(b bool, message string) {
	if !b {
		panic("bui: " + message)
	}
}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {
	if err != nil {
		panic(err)
	}
}
