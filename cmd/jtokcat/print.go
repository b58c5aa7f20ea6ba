package main

import (
	"fmt"
	"io"

	"github.com/ashenfall/jtok"
)

// eventPrinter is a jtok.Sink that writes one line per event. It never asks
// the parser to stop, so its Event method always returns true.
type eventPrinter struct {
	w         io.Writer
	showBytes bool
}

func newEventPrinter(w io.Writer, showBytes bool) *eventPrinter {
	return &eventPrinter{w: w, showBytes: showBytes}
}

func (p *eventPrinter) Event(e jtok.Event) bool {
	if p.showBytes && len(e.Bytes) > 0 {
		fmt.Fprintf(p.w, "%s %q\n", e.Kind, e.Bytes)
	} else {
		fmt.Fprintln(p.w, e.Kind)
	}
	return true
}
