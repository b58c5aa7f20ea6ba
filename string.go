package jtok

// stepString dispatches one byte while inside a JSON string body (spec.md
// §4.2's in-string row).
func (p *Parser) stepString(c byte) (bool, error) {
	if c < 0x20 {
		return false, p.fail(CodeEmbeddedControlChar, "")
	}
	if c == '"' {
		if p.pendingHigh != -1 {
			return false, p.fail(CodeLoneSurrogate, "unterminated high surrogate at end of string")
		}
		if err := p.flushFragment(); err != nil {
			return false, err
		}
		if err := p.emit(Event{Kind: EndString}); err != nil {
			return false, err
		}
		_, err := p.pop()
		return false, err
	}
	if c == '\\' {
		return false, p.push(stInEscape)
	}
	if p.pendingHigh != -1 {
		return false, p.fail(CodeLoneSurrogate, "unterminated high surrogate")
	}
	if c >= 0x80 && !p.flags.IgnoreRFC3629 && isBadLeadByte(c) {
		return false, p.fail(CodeBadUTF8Byte, "")
	}
	return false, p.pushStringByte(c)
}

// stepEscape dispatches the character following a `\` (spec.md §4.2's
// in-escape row).
func (p *Parser) stepEscape(c byte) (bool, error) {
	if p.pendingHigh != -1 && c != 'u' {
		return false, p.fail(CodeLoneSurrogate, "unterminated high surrogate")
	}
	switch c {
	case '"', '/', '\\':
		return p.finishEscape(c)
	case 'b':
		return p.finishEscape(0x08)
	case 'f':
		return p.finishEscape(0x0C)
	case 'n':
		return p.finishEscape(0x0A)
	case 'r':
		return p.finishEscape(0x0D)
	case 't':
		return p.finishEscape(0x09)
	case 'u':
		// Force-flush before beginning decode so a decoded multi-byte
		// sequence is never split across a fragment boundary (spec.md
		// §4.3).
		if err := p.flushFragment(); err != nil {
			return false, err
		}
		if _, err := p.pop(); err != nil {
			return false, err
		}
		if err := p.push(stInUEscape1); err != nil {
			return false, err
		}
		p.pendingCP = 0
		return false, nil
	default:
		return false, p.fail(CodeBadEscape, "")
	}
}

// finishEscape buffers the literal byte a single-character escape decodes
// to, then pops back to in-string.
func (p *Parser) finishEscape(b byte) (bool, error) {
	if err := p.pushStringByte(b); err != nil {
		return false, err
	}
	_, err := p.pop()
	return false, err
}

// stepUEscape accumulates one hex digit of a \uXXXX escape (spec.md §4.2's
// in-uescape-1..4 rows). The fourth digit triggers decode (spec.md §4.4).
func (p *Parser) stepUEscape(c byte, top stateTag) (bool, error) {
	digit, ok := hexVal(c)
	if !ok {
		return false, p.fail(CodeInvalidToken, "expected hex digit")
	}
	switch top {
	case stInUEscape1:
		p.pendingCP = rune(digit) << 12
		p.stack.swapTop(stInUEscape2)
		return false, nil
	case stInUEscape2:
		p.pendingCP |= rune(digit) << 8
		p.stack.swapTop(stInUEscape3)
		return false, nil
	case stInUEscape3:
		p.pendingCP |= rune(digit) << 4
		p.stack.swapTop(stInUEscape4)
		return false, nil
	default: // stInUEscape4
		p.pendingCP |= rune(digit)
		if _, err := p.pop(); err != nil {
			return false, err
		}
		return p.completeUEscape()
	}
}

// completeUEscape applies surrogate-pair joining: a lone high surrogate is
// held in pendingHigh until the immediately following \u escape supplies its
// low surrogate; any other ordering is rejected rather than silently
// mis-encoded (spec.md §9 flags the original's silent 3-byte encoding of
// lone surrogates as a bug).
func (p *Parser) completeUEscape() (bool, error) {
	cp := p.pendingCP
	invariant(cp >= 0 && cp <= 0xFFFF, "decoded \\u escape %#x out of BMP range", cp)

	if p.pendingHigh != -1 {
		hi := p.pendingHigh
		if !isLowSurrogate(cp) {
			return false, p.fail(CodeLoneSurrogate, "high surrogate not followed by a low surrogate")
		}
		p.pendingHigh = -1
		return false, p.pushDecodedRune(joinSurrogatePair(hi, cp))
	}

	if isHighSurrogate(cp) {
		p.pendingHigh = cp
		return false, nil
	}
	if isLowSurrogate(cp) {
		return false, p.fail(CodeLoneSurrogate, "low surrogate without preceding high surrogate")
	}
	return false, p.pushDecodedRune(cp)
}
