package jtok

import "fmt"

// invariant panics with a labelled message when condition is false. These
// check internal consistency that a correct implementation can never
// violate — they are not how user-input errors are reported (those are
// ordinary *ParseError returns from Push/Finalize). Grounded on the
// precondition/invariant assertion style in opal-lang-opal/core/invariant,
// trimmed to the one helper this package needs.
func invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("jtok: INVARIANT VIOLATION: %s", fmt.Sprintf(format, args...)))
	}
}
