package cograph

import (
	"fmt"
	"io"
	"strings"
)

// StructureStream carries structures through a chain of goroutines.
// Close() is called by whoever feeds Outlet, and Err() is valid once Outlet has been drained.
type StructureStream struct {
	Outlet chan *Node
	err    error
}

func NewStructureStream() *StructureStream {
	stream := &StructureStream{
		Outlet: make(chan *Node, 1),
	}
	return stream
}

// StreamStructures drains the given iterator into a new StructureStream.
func StreamStructures(it StructureIterator) *StructureStream {
	next := NewStructureStream()

	go func() {
		for it.Next() {
			next.Outlet <- it.Node()
		}
		next.err = it.Err()
		next.Close()
	}()

	return next
}

func (stream *StructureStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// Err returns the error that ended the feeding iterator, if any.
func (stream *StructureStream) Err() error {
	return stream.err
}

func (stream *StructureStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Print writes each structure as a text row to out and forwards it on the returned stream.
func (stream *StructureStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *StructureStream {

	next := &StructureStream{
		Outlet: make(chan *Node, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		var text []byte
		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			if opts.Numbered {
				fmt.Fprintf(&buf, "%06d,", count)
			}
			text = X.AppendText(text[:0])
			buf.Write(text)
			buf.WriteByte('\n')
			if _, err := io.WriteString(out, buf.String()); err != nil && next.err == nil {
				next.err = err
			}
			buf.Reset()
			next.Outlet <- X
		}
		if err := out.Close(); err != nil && next.err == nil {
			next.err = err
		}
		if next.err == nil {
			next.err = stream.err
		}
		next.Close()
	}()

	return next
}
