// Package jtok implements a streaming, push-based JSON tokenizer. Callers
// feed successive byte chunks of a JSON document through Push; the parser
// emits a linear sequence of Events to a caller-supplied Sink. The parser
// does not build a value tree — it only recognises structure and hands the
// caller raw string fragments and number literals.
//
// A Parser is allocation-free after New: its stack and scratch buffer are
// sized once at construction and never grow. A Parser must not be driven
// concurrently from multiple goroutines, though independent Parsers are
// fully independent and may run in parallel.
package jtok

// Kind is the tag of an Event, one of the twelve in spec.md §3.
type Kind int8

const (
	BeginObject Kind = iota
	EndObject
	BeginArray
	EndArray
	BeginString
	StringFragment
	EndString
	Integer
	Float
	True
	False
	Null
)

func (k Kind) String() string {
	switch k {
	case BeginObject:
		return "BeginObject"
	case EndObject:
		return "EndObject"
	case BeginArray:
		return "BeginArray"
	case EndArray:
		return "EndArray"
	case BeginString:
		return "BeginString"
	case StringFragment:
		return "StringFragment"
	case EndString:
		return "EndString"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case True:
		return "True"
	case False:
		return "False"
	case Null:
		return "Null"
	default:
		return "Unknown"
	}
}

// Event is one record delivered to a Sink. Bytes is only non-empty for
// StringFragment, Integer, and Float, and is only valid for the duration of
// the Sink call that receives it — it borrows the parser's own scratch
// buffer, which is reused immediately afterward.
type Event struct {
	Kind  Kind
	Bytes []byte
}

// Sink receives events from a Parser. A false return stops the in-progress
// Push or Finalize call with a CodeCallbackStop error. A Sink must not call
// Push or Finalize on the Parser that is invoking it.
type Sink interface {
	Event(Event) bool
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event) bool

// Event implements Sink.
func (f SinkFunc) Event(e Event) bool { return f(e) }

// Flags holds static configuration, immutable after the first byte is
// pushed (spec.md §3, §6).
type Flags struct {
	// IgnoreRFC3629 disables lead-byte UTF-8 validation on direct string
	// bytes (spec.md §4.4.1).
	IgnoreRFC3629 bool
}

const (
	defaultStackCap = 1024
	defaultBufCap   = 128
)

// Option configures a Parser at construction. Mirrors the functional-options
// idiom used for tunables elsewhere in the pack (e.g. streamscrub.Option).
type Option func(*config)

type config struct {
	stackCap int
	bufCap   int
	flags    Flags
}

// WithStackCap overrides the default state-stack capacity (1024 tags). Each
// open array or object occupies at least two tags, so at most n/2 of them
// can be open at once.
func WithStackCap(n int) Option {
	return func(c *config) { c.stackCap = n }
}

// WithBufCap overrides the default scratch-buffer size (128 bytes); this
// bounds both the longest number literal and the fragment granularity of
// long strings.
func WithBufCap(n int) Option {
	return func(c *config) { c.bufCap = n }
}

// WithFlags sets the static configuration flags.
func WithFlags(f Flags) Option {
	return func(c *config) { c.flags = f }
}

// Parser is one incremental JSON tokenizer instance.
type Parser struct {
	sink  Sink
	flags Flags

	numBytes uint64

	stack stack
	buf   fragBuf

	// pendingHigh holds a decoded \u high surrogate awaiting its paired low
	// surrogate; -1 means none pending.
	pendingHigh rune
	// pendingCP accumulates the four hex digits of a \u escape in progress.
	pendingCP rune

	// number-literal bookkeeping, reset each time a new number begins.
	num numberScan

	err error
}

// New constructs a Parser that delivers events to sink.
func New(sink Sink, opts ...Option) *Parser {
	c := config{stackCap: defaultStackCap, bufCap: defaultBufCap}
	for _, opt := range opts {
		opt(&c)
	}
	return &Parser{
		sink:        sink,
		flags:       c.flags,
		stack:       newStack(c.stackCap),
		buf:         newFragBuf(c.bufCap),
		pendingHigh: -1,
	}
}

// NumBytes returns the total number of bytes consumed since construction.
func (p *Parser) NumBytes() uint64 { return p.numBytes }

// emit delivers an event to the sink, translating a false return into a
// CodeCallbackStop error.
func (p *Parser) emit(e Event) error {
	if !p.sink.Event(e) {
		return newParseError(CodeCallbackStop, p.numBytes, "")
	}
	return nil
}

func (p *Parser) fail(code Code, detail string) error {
	err := newParseError(code, p.numBytes, detail)
	p.err = err
	return err
}

func (p *Parser) push(tag stateTag) error {
	if !p.stack.push(tag) {
		return p.fail(CodeStackOverflow, "")
	}
	return nil
}

func (p *Parser) pop() (stateTag, error) {
	tag, ok := p.stack.pop()
	if !ok {
		return 0, p.fail(CodeStackUnderflow, "")
	}
	return tag, nil
}

// flushFragment emits the scratch buffer's current contents (if any) as a
// STRING_FRAGMENT event and clears it.
func (p *Parser) flushFragment() error {
	if p.buf.len() == 0 {
		return nil
	}
	if err := p.emit(Event{Kind: StringFragment, Bytes: p.buf.bytes()}); err != nil {
		return err
	}
	p.buf.reset()
	return nil
}

// pushStringByte appends one direct (non-escaped) string byte, flushing
// first if the buffer is full (spec.md §4.3's PUSH_CHAR).
func (p *Parser) pushStringByte(c byte) error {
	if p.buf.full() {
		if err := p.flushFragment(); err != nil {
			return err
		}
	}
	p.buf.append(c)
	return nil
}

// pushDecodedRune appends the UTF-8 encoding of a decoded \u escape,
// flushing first if the whole sequence would not otherwise fit, so a
// decoded sequence is never split across a fragment boundary (spec.md
// §4.3's forced pre-escape flush generalised to also cover the post-decode
// append).
func (p *Parser) pushDecodedRune(cp rune) error {
	var tmp [4]byte
	enc := encodeUTF8(tmp[:0], cp)
	if p.buf.room() < len(enc) {
		if err := p.flushFragment(); err != nil {
			return err
		}
	}
	p.buf.appendBytes(enc)
	return nil
}

// pushNumByte appends one number byte, failing with CodeNumberTooBig if the
// literal would exceed the scratch buffer's capacity (spec.md §4.3: number
// literals are never fragmented).
func (p *Parser) pushNumByte(c byte) error {
	if p.buf.full() {
		return p.fail(CodeNumberTooBig, "")
	}
	p.buf.append(c)
	return nil
}

// Push consumes b, synchronously emitting events to the sink. It returns the
// first fatal error, if any; once an error has been returned the Parser is
// terminal and further Push/Finalize calls return the same error without
// doing further work.
func (p *Parser) Push(b []byte) error {
	if p.err != nil {
		return p.err
	}
	before := p.numBytes
	for _, c := range b {
		if err := p.consumeByte(c); err != nil {
			p.err = err
			return err
		}
		p.numBytes++
	}
	invariant(p.numBytes == before+uint64(len(b)), "num_bytes advanced by %d, want %d", p.numBytes-before, len(b))
	return nil
}

// consumeByte runs the dispatch loop for one input byte, following any
// number of retries (spec.md §4.2) without advancing numBytes in between.
func (p *Parser) consumeByte(c byte) error {
	for {
		retry, err := p.step(c)
		if err != nil {
			return err
		}
		if !retry {
			return nil
		}
	}
}

// Finalize signals end of input. It flushes any number literal still
// pending a terminator byte, then checks the end-of-input invariants from
// spec.md §7: an empty stack is CodeStackTooSmall (no value ever parsed), a
// stack with more than one tag is CodeStackTooBig (document incomplete), and
// a single remaining tag that is not stPostValue is CodeWrongFinalState.
func (p *Parser) Finalize() error {
	if p.err != nil {
		return p.err
	}
	if err := p.flushPendingNumber(); err != nil {
		p.err = err
		return err
	}
	if p.pendingHigh != -1 {
		err := p.fail(CodeLoneSurrogate, "unterminated high surrogate at end of input")
		return err
	}
	switch p.stack.depth() {
	case 0:
		err := p.fail(CodeStackTooSmall, "")
		return err
	case 1:
		top, _ := p.stack.top()
		if top != stPostValue {
			err := p.fail(CodeWrongFinalState, "")
			return err
		}
		return nil
	default:
		err := p.fail(CodeStackTooBig, "")
		return err
	}
}

// flushPendingNumber implements spec.md §9's last Open Question: a number
// with no trailing terminator byte (e.g. a bare "42" at end of stream) must
// still be emitted by Finalize rather than silently dropped.
func (p *Parser) flushPendingNumber() error {
	top, ok := p.stack.top()
	if !ok {
		return nil
	}
	switch top {
	case stInNumberInt, stInNumberFrac, stInNumberExpDigits:
		if err := p.num.validateTerminable(top); err != nil {
			return p.fail(CodeInvalidToken, err.Error())
		}
		kind := Integer
		if top != stInNumberInt {
			kind = Float
		}
		if _, ok := p.stack.pop(); !ok {
			return p.fail(CodeStackUnderflow, "")
		}
		if err := p.emit(Event{Kind: kind, Bytes: p.buf.bytes()}); err != nil {
			return err
		}
		p.buf.reset()
	}
	return nil
}
