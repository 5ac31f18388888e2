// Package frame reads and writes length-prefixed msgpack frames on top of
// buffer.GrowBuffer.
//
// Each frame is a 4-byte big-endian payload length followed by the payload:
//
//	+--------+--------+--------+--------+=================+
//	|        length (uint32, BE)        | msgpack payload |
//	+--------+--------+--------+--------+=================+
package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/haivivi/growbuf/pkg/buffer"
)

// HeaderSize is the size of the length prefix.
const HeaderSize = 4

// DefaultMaxFrameSize caps the payload of a single frame.
const DefaultMaxFrameSize = 16 << 20

// ErrFrameTooLarge is returned for a payload larger than the configured
// maximum, on either side of the wire.
var ErrFrameTooLarge = errors.New("frame: payload too large")

type config struct {
	maxFrameSize int
	bufferOpts   []buffer.Option
}

// Option configures an Encoder or Decoder.
type Option func(*config)

// WithMaxFrameSize sets the largest payload accepted. Non-positive values
// keep the default.
func WithMaxFrameSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxFrameSize = n
		}
	}
}

// WithBufferOptions passes options to the underlying GrowBuffers.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(c *config) {
		c.bufferOpts = append(c.bufferOpts, opts...)
	}
}

func newConfig(opts []Option) *config {
	c := &config{maxFrameSize: DefaultMaxFrameSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encoder assembles frames in a pending buffer and flushes them to a writer.
type Encoder struct {
	w       io.Writer
	cfg     *config
	pending *buffer.GrowBuffer
	scratch *buffer.GrowBuffer
	enc     *msgpack.Encoder
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	cfg := newConfig(opts)
	scratch := buffer.Grow(cfg.bufferOpts...)
	enc := msgpack.NewEncoder(scratch)
	enc.SetCustomStructTag("json")
	return &Encoder{
		w:       w,
		cfg:     cfg,
		pending: buffer.Grow(cfg.bufferOpts...),
		scratch: scratch,
		enc:     enc,
	}
}

// Encode marshals v and appends it as one frame to the pending buffer. Call
// Flush to write pending frames.
func (e *Encoder) Encode(v any) error {
	e.scratch.Reset()
	if err := e.enc.Encode(v); err != nil {
		return fmt.Errorf("frame: encode: %w", err)
	}
	size := e.scratch.Len()
	if size > e.cfg.maxFrameSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, size, e.cfg.maxFrameSize)
	}
	if _, err := e.pending.EnsureCapacity(HeaderSize + size); err != nil {
		return fmt.Errorf("frame: encode: %w", err)
	}
	if err := e.pending.AppendUint32(uint32(size)); err != nil {
		return fmt.Errorf("frame: encode: %w", err)
	}
	if err := buffer.Copy(e.pending, e.scratch, size); err != nil {
		return fmt.Errorf("frame: encode: %w", err)
	}
	return nil
}

// Buffered returns the number of bytes waiting to be flushed.
func (e *Encoder) Buffered() int {
	return e.pending.Len()
}

// Stats reports the layout of the pending buffer.
func (e *Encoder) Stats() buffer.Stats {
	return e.pending.Stats()
}

// Flush writes all pending frames to the underlying writer.
func (e *Encoder) Flush() error {
	if _, err := e.pending.WriteTo(e.w); err != nil {
		return fmt.Errorf("frame: flush: %w", err)
	}
	return nil
}

// Close flushes pending frames and releases the buffers.
func (e *Encoder) Close() error {
	err := e.Flush()
	e.pending.Close()
	e.scratch.Close()
	return err
}

// Decoder reads frames from a reader.
type Decoder struct {
	r   io.Reader
	cfg *config
	buf *buffer.GrowBuffer
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	cfg := newConfig(opts)
	return &Decoder{
		r:   r,
		cfg: cfg,
		buf: buffer.Grow(cfg.bufferOpts...),
	}
}

// fill reads until at least n bytes are buffered. A reader that ends with
// nothing buffered yields io.EOF; one that ends mid-frame yields
// io.ErrUnexpectedEOF.
func (d *Decoder) fill(n int) error {
	if d.buf.Len() < n {
		if _, err := d.buf.EnsureCapacity(n - d.buf.Len()); err != nil {
			return fmt.Errorf("frame: read: %w", err)
		}
	}
	for d.buf.Len() < n {
		_, err := d.buf.Fill(d.r, 1)
		if err == nil {
			continue
		}
		if err == io.EOF && d.buf.Len() > 0 {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// Next returns the payload of the next frame without decoding it.
func (d *Decoder) Next() ([]byte, error) {
	if err := d.fill(HeaderSize); err != nil {
		return nil, err
	}
	size, err := d.buf.PeekUint32()
	if err != nil {
		return nil, err
	}
	if uint64(size) > uint64(d.cfg.maxFrameSize) {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, size, d.cfg.maxFrameSize)
	}
	if err := d.fill(HeaderSize + int(size)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if err := d.buf.SafeShift(HeaderSize); err != nil {
		return nil, err
	}
	payload := make([]byte, size)
	if err := d.buf.Extract(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Decode reads the next frame and unmarshals it into v. It returns io.EOF
// when the reader ends cleanly between frames.
func (d *Decoder) Decode(v any) error {
	payload, err := d.Next()
	if err != nil {
		return err
	}
	dec := msgpack.NewDecoder(bytes.NewReader(payload))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("frame: decode: %w", err)
	}
	return nil
}

// Buffered returns the number of bytes read but not yet decoded.
func (d *Decoder) Buffered() int {
	return d.buf.Len()
}

// Stats reports the layout of the read buffer.
func (d *Decoder) Stats() buffer.Stats {
	return d.buf.Stats()
}

// Close releases the read buffer. It does not close the reader.
func (d *Decoder) Close() error {
	return d.buf.Close()
}
