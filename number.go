package jtok

import "errors"

// numberScan tracks how many digits have been seen in each part of the
// number literal currently being scanned, so the scanner can reject
// incomplete forms ("-", "1.", "1e", "1e+") that the collapsed state list
// in spec.md §4.1 (in-number-int/frac/exp-sign/exp-digits, without the
// teacher's separate zero-state) would otherwise accept at a terminator.
type numberScan struct {
	intDigits  int
	fracDigits int
	expDigits  int
}

func (n *numberScan) reset() {
	n.intDigits = 0
	n.fracDigits = 0
	n.expDigits = 0
}

var errIncompleteNumber = errors.New("incomplete number literal")

// validateTerminable reports whether the number is well-formed enough to be
// terminated (by a terminator byte or end of input) while in the given
// substate.
func (n *numberScan) validateTerminable(top stateTag) error {
	switch top {
	case stInNumberInt:
		if n.intDigits == 0 {
			return errIncompleteNumber
		}
	case stInNumberFrac:
		if n.fracDigits == 0 {
			return errIncompleteNumber
		}
	case stInNumberExpDigits:
		if n.expDigits == 0 {
			return errIncompleteNumber
		}
	}
	return nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// isTerminator reports whether b can end a number literal (spec.md
// GLOSSARY "Terminator"). ')' is kept in the class for fidelity to the
// original terminator set even though the S-expression-style '(' ... ')'
// wrapper states themselves are not implemented (spec.md §9); a stray ')'
// still ends the number scan and is then rejected by whatever context
// follows, exactly as any other out-of-place byte would be.
func isTerminator(b byte) bool {
	return isWhitespace(b) || b == ',' || b == ']' || b == '}' || b == ')'
}
