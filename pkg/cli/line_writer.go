package cli

import (
	"bytes"

	"github.com/haivivi/growbuf/pkg/buffer"
)

// LineWriter implements io.Writer and splits the written stream into lines.
// Partial lines are held in a buffer until their newline arrives.
type LineWriter struct {
	buf    *buffer.GrowBuffer
	handle func(line []byte) error
	lines  int
}

// NewLineWriter creates a line writer calling handle for every complete
// line, without its trailing newline. The slice passed to handle is only
// valid during the call.
func NewLineWriter(handle func(line []byte) error, opts ...buffer.Option) *LineWriter {
	return &LineWriter{
		buf:    buffer.Grow(opts...),
		handle: handle,
	}
}

// Write implements io.Writer.
func (w *LineWriter) Write(p []byte) (n int, err error) {
	if err := w.buf.Append(p); err != nil {
		return 0, err
	}
	for {
		data := w.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(data[:i], []byte{'\r'})
		w.lines++
		if err := w.handle(line); err != nil {
			return len(p), err
		}
		if err := w.buf.Shift(i + 1); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush hands any trailing partial line to the handler.
func (w *LineWriter) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	w.lines++
	err := w.handle(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// Lines returns the number of lines handled so far.
func (w *LineWriter) Lines() int {
	return w.lines
}

// Stats reports the layout of the pending line buffer.
func (w *LineWriter) Stats() buffer.Stats {
	return w.buf.Stats()
}

// Close releases the line buffer without flushing it.
func (w *LineWriter) Close() error {
	return w.buf.Close()
}
