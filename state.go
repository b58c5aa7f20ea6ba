package jtok

// step runs one dispatch of byte c against the current top-of-stack state
// (or the empty stack, which is document start). It returns retry=true when
// the caller must re-dispatch the same byte under the state now on top —
// spec.md §4.2's retry primitive for terminators that simultaneously end a
// value and act on the enclosing container.
func (p *Parser) step(c byte) (retry bool, err error) {
	top, ok := p.stack.top()
	if !ok {
		_, err := p.acceptValue(c, stPostValue)
		return false, err
	}

	switch top {
	case stPostValue:
		if isWhitespace(c) {
			return false, nil
		}
		return false, p.fail(CodeInvalidToken, "unexpected data after top-level value")

	case stInArray:
		if c == ']' {
			if _, err := p.pop(); err != nil {
				return false, err
			}
			return false, p.emit(Event{Kind: EndArray})
		}
		return p.acceptValue(c, stAfterArrayElem)

	case stAfterArrayElem:
		if isWhitespace(c) {
			return false, nil
		}
		if c == ',' {
			_, err := p.pop()
			return false, err
		}
		if c == ']' {
			if _, err := p.pop(); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, p.fail(CodeInvalidToken, "expected ',' or ']'")

	case stInObject:
		if isWhitespace(c) {
			return false, nil
		}
		if c == '"' {
			if err := p.push(stAfterKey); err != nil {
				return false, err
			}
			if err := p.push(stInString); err != nil {
				return false, err
			}
			return false, p.emit(Event{Kind: BeginString})
		}
		if c == '}' {
			if _, err := p.pop(); err != nil {
				return false, err
			}
			return false, p.emit(Event{Kind: EndObject})
		}
		return false, p.fail(CodeInvalidToken, "expected '\"' or '}'")

	case stAfterKey:
		if isWhitespace(c) {
			return false, nil
		}
		if c == ':' {
			return false, p.push(stAfterColon)
		}
		return false, p.fail(CodeInvalidToken, "expected ':'")

	case stAfterColon:
		return p.acceptValue(c, stAfterObjectValue)

	case stAfterObjectValue:
		if isWhitespace(c) {
			return false, nil
		}
		if c == ',' || c == '}' {
			for i := 0; i < 3; i++ {
				if _, err := p.pop(); err != nil {
					return false, err
				}
			}
			if c == ',' {
				return false, nil
			}
			return true, nil
		}
		return false, p.fail(CodeInvalidToken, "expected ',' or '}'")

	case stInString:
		return p.stepString(c)
	case stInEscape:
		return p.stepEscape(c)
	case stInUEscape1, stInUEscape2, stInUEscape3, stInUEscape4:
		return p.stepUEscape(c, top)

	case stInNumberInt:
		return p.stepNumberInt(c)
	case stInNumberFrac:
		return p.stepNumberFrac(c)
	case stInNumberExpSign:
		return p.stepNumberExpSign(c)
	case stInNumberExpDigits:
		return p.stepNumberExpDigits(c)

	case stLitT1:
		return p.stepLiteralChar(c, 'r', stLitT2)
	case stLitT2:
		return p.stepLiteralChar(c, 'u', stLitT3)
	case stLitT3:
		return p.stepLiteralFinal(c, 'e', Event{Kind: True})
	case stLitF1:
		return p.stepLiteralChar(c, 'a', stLitF2)
	case stLitF2:
		return p.stepLiteralChar(c, 'l', stLitF3)
	case stLitF3:
		return p.stepLiteralChar(c, 's', stLitF4)
	case stLitF4:
		return p.stepLiteralFinal(c, 'e', Event{Kind: False})
	case stLitN1:
		return p.stepLiteralChar(c, 'u', stLitN2)
	case stLitN2:
		return p.stepLiteralChar(c, 'l', stLitN3)
	case stLitN3:
		return p.stepLiteralFinal(c, 'l', Event{Kind: Null})

	default:
		return false, p.fail(CodeInvalidState, "")
	}
}

// acceptValue is spec.md §4.2's ACCEPT_VALUE production: it ignores
// whitespace, and otherwise pushes followUp (the tag to return to once the
// value completes) then the appropriate child tag, emitting BGN_* events
// for structural openers and seeding the scratch buffer for numbers.
func (p *Parser) acceptValue(c byte, followUp stateTag) (bool, error) {
	if isWhitespace(c) {
		return false, nil
	}
	switch {
	case c == '{':
		if err := p.push(followUp); err != nil {
			return false, err
		}
		if err := p.push(stInObject); err != nil {
			return false, err
		}
		return false, p.emit(Event{Kind: BeginObject})
	case c == '[':
		if err := p.push(followUp); err != nil {
			return false, err
		}
		if err := p.push(stInArray); err != nil {
			return false, err
		}
		return false, p.emit(Event{Kind: BeginArray})
	case c == '"':
		if err := p.push(followUp); err != nil {
			return false, err
		}
		if err := p.push(stInString); err != nil {
			return false, err
		}
		return false, p.emit(Event{Kind: BeginString})
	case c == 't':
		if err := p.push(followUp); err != nil {
			return false, err
		}
		return false, p.push(stLitT1)
	case c == 'f':
		if err := p.push(followUp); err != nil {
			return false, err
		}
		return false, p.push(stLitF1)
	case c == 'n':
		if err := p.push(followUp); err != nil {
			return false, err
		}
		return false, p.push(stLitN1)
	case c == '-' || isDigit(c):
		if err := p.push(followUp); err != nil {
			return false, err
		}
		if err := p.push(stInNumberInt); err != nil {
			return false, err
		}
		p.num.reset()
		p.buf.reset()
		if err := p.pushNumByte(c); err != nil {
			return false, err
		}
		if isDigit(c) {
			p.num.intDigits++
		}
		return false, nil
	default:
		return false, p.fail(CodeInvalidToken, "expected a value")
	}
}

// stepLiteralChar advances through a non-final keyword letter: it requires
// exactly want, swaps the top tag to next, and buffers nothing (the literal
// spelling is fixed, so there is no payload to accumulate).
func (p *Parser) stepLiteralChar(c byte, want byte, next stateTag) (bool, error) {
	if c != want {
		return false, p.fail(CodeInvalidToken, "invalid literal")
	}
	p.stack.swapTop(next)
	return false, nil
}

// stepLiteralFinal matches the last character of a keyword, emits ev, and
// pops the literal tag — revealing the pending-follow-up tag pushed by
// acceptValue, exactly as a number's terminator pop does.
func (p *Parser) stepLiteralFinal(c byte, want byte, ev Event) (bool, error) {
	if c != want {
		return false, p.fail(CodeInvalidToken, "invalid literal")
	}
	if _, err := p.pop(); err != nil {
		return false, err
	}
	return false, p.emit(ev)
}
