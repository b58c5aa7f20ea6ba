package main

import (
	"errors"
	"io"
	"os"

	"github.com/ashenfall/jtok"
)

// runTokenize reads path (or stdin, when path is empty) in chunkSize chunks,
// feeding each one to a jtok.Parser and printing every event to w. Reading
// in arbitrary chunks rather than all at once is the point: it exercises
// spec.md's property P1 (chunking must not change the event sequence)
// against real OS-buffered I/O instead of only in-memory test inputs.
func runTokenize(w io.Writer, path string, chunkSize int, showBytes bool) error {
	if chunkSize <= 0 {
		return errors.New("chunk-size must be positive")
	}

	src := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	printer := newEventPrinter(w, showBytes)
	p := jtok.New(printer)

	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if perr := p.Push(buf[:n]); perr != nil {
				return perr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return p.Finalize()
}
