package jtok_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ashenfall/jtok"
)

// collector is a jtok.Sink that records every event with its Bytes payload
// copied out (Bytes borrows the parser's scratch buffer and is only valid
// for the duration of the Event call).
type collector struct {
	events []jtok.Event
	stopAt int // stop after this many events; 0 means never stop
}

func (c *collector) Event(e jtok.Event) bool {
	cp := append([]byte(nil), e.Bytes...)
	c.events = append(c.events, jtok.Event{Kind: e.Kind, Bytes: cp})
	if c.stopAt > 0 && len(c.events) >= c.stopAt {
		return false
	}
	return true
}

func ev(k jtok.Kind) jtok.Event { return jtok.Event{Kind: k} }

func evb(k jtok.Kind, b string) jtok.Event { return jtok.Event{Kind: k, Bytes: []byte(b)} }

func runAll(t *testing.T, input string) (*collector, error) {
	t.Helper()
	c := &collector{}
	p := jtok.New(c)
	if err := p.Push([]byte(input)); err != nil {
		return c, err
	}
	return c, p.Finalize()
}

func TestIntArray(t *testing.T) {
	c, err := runAll(t, "[1,2,3]")
	require.NoError(t, err)
	want := []jtok.Event{
		ev(jtok.BeginArray),
		evb(jtok.Integer, "1"),
		evb(jtok.Integer, "2"),
		evb(jtok.Integer, "3"),
		ev(jtok.EndArray),
	}
	if diff := cmp.Diff(want, c.events); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestNumBytesAfterIntArray(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	require.NoError(t, p.Push([]byte("[1,2,3]")))
	require.Equal(t, uint64(7), p.NumBytes())
	require.NoError(t, p.Finalize())
}

func TestObjectWithBoolean(t *testing.T) {
	c, err := runAll(t, `{"a":true}`)
	require.NoError(t, err)
	want := []jtok.Event{
		ev(jtok.BeginObject),
		ev(jtok.BeginString),
		evb(jtok.StringFragment, "a"),
		ev(jtok.EndString),
		ev(jtok.True),
		ev(jtok.EndObject),
	}
	if diff := cmp.Diff(want, c.events); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

// TestChunking checks property P1 on one split: a string pushed in two
// chunks still yields fragments that join to the whole value, bracketed by
// BeginString and EndString.
func TestChunking(t *testing.T) {
	input := `"hel`
	c := &collector{}
	p := jtok.New(c)
	require.NoError(t, p.Push([]byte(input)))
	require.NoError(t, p.Push([]byte(`lo"`)))
	require.NoError(t, p.Finalize())

	var joined []byte
	for _, e := range c.events {
		if e.Kind == jtok.StringFragment {
			joined = append(joined, e.Bytes...)
		}
	}
	require.Equal(t, "hello", string(joined))
	require.Equal(t, jtok.BeginString, c.events[0].Kind)
	require.Equal(t, jtok.EndString, c.events[len(c.events)-1].Kind)
}

func TestUnicodeEscape(t *testing.T) {
	c, err := runAll(t, `"\u00e9"`)
	require.NoError(t, err)
	want := []jtok.Event{
		ev(jtok.BeginString),
		evb(jtok.StringFragment, "\xc3\xa9"),
		ev(jtok.EndString),
	}
	if diff := cmp.Diff(want, c.events); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestSurrogatePairJoins(t *testing.T) {
	// U+1F600 GRINNING FACE, escaped as a UTF-16 surrogate pair.
	c, err := runAll(t, `"\uD83D\uDE00"`)
	require.NoError(t, err)
	require.Len(t, c.events, 3)
	require.Equal(t, "\xf0\x9f\x98\x80", string(c.events[1].Bytes))
}

func TestLoneHighSurrogateRejected(t *testing.T) {
	_, err := runAll(t, `"\uD800"`)
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrLoneSurrogate))
}

func TestLoneLowSurrogateRejected(t *testing.T) {
	_, err := runAll(t, `"\uDC00"`)
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrLoneSurrogate))
}

func TestUnclosedArrayFinalizeFails(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	require.NoError(t, p.Push([]byte("[1,")))
	err := p.Finalize()
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrStackTooBig))
}

func TestFloatWithExponent(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	require.NoError(t, p.Push([]byte("123.45e-6")))
	require.NoError(t, p.Finalize())
	require.Len(t, c.events, 1)
	require.Equal(t, jtok.Float, c.events[0].Kind)
	require.Equal(t, "123.45e-6", string(c.events[0].Bytes))
}

func TestTruncatedLiteralFinalizeFails(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	require.NoError(t, p.Push([]byte("tru")))
	err := p.Finalize()
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrStackTooBig))
}

func TestMistypedLiteralRejected(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	err := p.Push([]byte("trux"))
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrInvalidToken))
}

func TestDeepNestingOverflows(t *testing.T) {
	input := make([]byte, 0, 1025)
	for i := 0; i < 1025; i++ {
		input = append(input, '[')
	}
	c := &collector{}
	p := jtok.New(c, jtok.WithStackCap(1024))
	err := p.Push(input)
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrStackOverflow))
}

func TestLongStringFragments(t *testing.T) {
	run := make([]byte, 200)
	for i := range run {
		run[i] = 'x'
	}
	input := `"` + string(run) + `"`
	c, err := runAll(t, input)
	require.NoError(t, err)

	var fragCount int
	var joined []byte
	for _, e := range c.events {
		if e.Kind == jtok.StringFragment {
			fragCount++
			joined = append(joined, e.Bytes...)
		}
	}
	require.GreaterOrEqual(t, fragCount, 2)
	require.Equal(t, string(run), string(joined))
}

func TestNumberTooBig(t *testing.T) {
	digits := make([]byte, 200)
	for i := range digits {
		digits[i] = '1'
	}
	c := &collector{}
	p := jtok.New(c)
	err := p.Push(digits)
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrNumberTooBig))
}

func TestEmbeddedControlCharRejected(t *testing.T) {
	_, err := runAll(t, "\"a\x01b\"")
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrEmbeddedControlChar))
}

func TestFinalizeOnEmptyStreamFails(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	err := p.Finalize()
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrStackTooSmall))
}

func TestFinalizeFlushesBareNumber(t *testing.T) {
	// No trailing terminator byte at all: spec.md §9's Open Question says
	// Finalize must still flush the pending number.
	c := &collector{}
	p := jtok.New(c)
	require.NoError(t, p.Push([]byte("42")))
	require.NoError(t, p.Finalize())
	require.Len(t, c.events, 1)
	require.Equal(t, jtok.Integer, c.events[0].Kind)
	require.Equal(t, "42", string(c.events[0].Bytes))
}

func TestCallbackStop(t *testing.T) {
	c := &collector{stopAt: 2}
	p := jtok.New(c)
	err := p.Push([]byte(`["a","b","c"]`))
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrCallbackStop))
	require.Len(t, c.events, 2)
}

func TestParserIsTerminalAfterError(t *testing.T) {
	c := &collector{}
	p := jtok.New(c)
	err1 := p.Push([]byte("}"))
	require.Error(t, err1)
	err2 := p.Push([]byte("1"))
	require.Equal(t, err1, err2)
}

func TestUppercaseHexEscapeAccepted(t *testing.T) {
	c, err := runAll(t, `"\u00E9"`)
	require.NoError(t, err)
	require.Equal(t, "\xc3\xa9", string(c.events[1].Bytes))
}

func TestNestedObjectsAndArrays(t *testing.T) {
	c, err := runAll(t, `{"a":[1,{"b":null}]}`)
	require.NoError(t, err)
	want := []jtok.Event{
		ev(jtok.BeginObject),
		ev(jtok.BeginString), evb(jtok.StringFragment, "a"), ev(jtok.EndString),
		ev(jtok.BeginArray),
		evb(jtok.Integer, "1"),
		ev(jtok.BeginObject),
		ev(jtok.BeginString), evb(jtok.StringFragment, "b"), ev(jtok.EndString),
		ev(jtok.Null),
		ev(jtok.EndObject),
		ev(jtok.EndArray),
		ev(jtok.EndObject),
	}
	if diff := cmp.Diff(want, c.events); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestBadUTF8LeadByteRejected(t *testing.T) {
	_, err := runAll(t, "\"\xc0\x80\"")
	require.Error(t, err)
	require.True(t, errors.Is(err, jtok.ErrBadUTF8Byte))
}

func TestIgnoreRFC3629Flag(t *testing.T) {
	c := &collector{}
	p := jtok.New(c, jtok.WithFlags(jtok.Flags{IgnoreRFC3629: true}))
	require.NoError(t, p.Push([]byte("\"\xc0\x80\"")))
	require.NoError(t, p.Finalize())
}

func TestDescribeErrorOutOfRange(t *testing.T) {
	require.Equal(t, "invalid error code", jtok.DescribeError(jtok.Code(9999)))
}

func TestVersion(t *testing.T) {
	require.NotEmpty(t, jtok.Version())
}
