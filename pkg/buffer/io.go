package buffer

import (
	"io"
)

// minRead is the free space ReadFrom keeps available for each read.
const minRead = 512

var (
	_ io.Reader       = (*GrowBuffer)(nil)
	_ io.Writer       = (*GrowBuffer)(nil)
	_ io.ReaderFrom   = (*GrowBuffer)(nil)
	_ io.WriterTo     = (*GrowBuffer)(nil)
	_ io.StringWriter = (*GrowBuffer)(nil)
	_ io.ByteWriter   = (*GrowBuffer)(nil)
	_ io.Closer       = (*GrowBuffer)(nil)
)

// Read extracts up to len(p) bytes into p and compacts the buffer. It returns
// io.EOF when the buffer is empty and p is not.
func (b *GrowBuffer) Read(p []byte) (int, error) {
	if err := b.checkOpen("read from"); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if b.n == 0 {
		return 0, io.EOF
	}
	n := min(len(p), b.n)
	return n, b.Extract(p[:n])
}

// ReadFrom appends data from r until io.EOF and returns the number of bytes
// read. The consumed prefix is reclaimed before growing when possible.
func (b *GrowBuffer) ReadFrom(r io.Reader) (int64, error) {
	if err := b.checkOpen("read into"); err != nil {
		return 0, err
	}
	var total int64
	for {
		b.Compact()
		if _, err := b.EnsureCapacity(minRead); err != nil {
			return total, err
		}
		m, err := r.Read(b.buf[b.end():])
		if m < 0 {
			panic("buffer: reader returned negative count from Read")
		}
		b.n += m
		total += int64(m)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Fill appends at least n bytes read from r. It returns io.EOF when nothing
// was read before the end of r, and io.ErrUnexpectedEOF when r ended early.
// Bytes read before an error are kept.
func (b *GrowBuffer) Fill(r io.Reader, n int) (int, error) {
	if err := b.checkOpen("read into"); err != nil {
		return 0, err
	}
	if _, err := b.EnsureCapacity(n); err != nil {
		return 0, err
	}
	m, err := io.ReadAtLeast(r, b.buf[b.end():], n)
	b.n += m
	return m, err
}

// WriteTo drains the buffer into w and returns the number of bytes written.
func (b *GrowBuffer) WriteTo(w io.Writer) (int64, error) {
	if err := b.checkOpen("write from"); err != nil {
		return 0, err
	}
	if b.n == 0 {
		return 0, nil
	}
	size := b.n
	m, err := w.Write(b.Bytes())
	if m > size {
		panic("buffer: writer returned invalid count from Write")
	}
	if serr := b.Shift(m); serr != nil {
		return int64(m), serr
	}
	if err != nil {
		return int64(m), err
	}
	if m != size {
		return int64(m), io.ErrShortWrite
	}
	return int64(m), nil
}
