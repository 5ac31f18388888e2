package buffer

import (
	"errors"
	"fmt"
)

// maxFormatAttempts bounds the render-grow-retry loop. One growth is enough
// unless an argument renders differently on each call.
const maxFormatAttempts = 4

// ErrFormat is returned when formatted output keeps outgrowing the space
// reserved for it.
var ErrFormat = errors.New("buffer: formatted output did not fit")

// Printf replaces the data with the formatted output, starting at the
// current cursor, and returns the number of bytes rendered.
func (b *GrowBuffer) Printf(format string, args ...any) (int, error) {
	if err := b.checkOpen("format into"); err != nil {
		return 0, err
	}
	n, err := b.printfAt(b.off, format, args)
	if err != nil {
		return 0, err
	}
	b.n = n
	return n, nil
}

// AppendPrintf appends the formatted output and returns the number of bytes
// rendered.
func (b *GrowBuffer) AppendPrintf(format string, args ...any) (int, error) {
	if err := b.checkOpen("format into"); err != nil {
		return 0, err
	}
	n, err := b.printfAt(b.end(), format, args)
	if err != nil {
		return 0, err
	}
	b.n += n
	return n, nil
}

// printfAt renders into the allocation starting at offset at. The output is
// appended to a zero-length slice capped at the allocation, so it lands in
// place exactly when it fits; otherwise append allocates elsewhere, the
// buffer grows to the reported length and the render is repeated.
func (b *GrowBuffer) printfAt(at int, format string, args []any) (int, error) {
	for range maxFormatAttempts {
		avail := len(b.buf) - at
		out := fmt.Appendf(b.buf[at:at:len(b.buf)], format, args...)
		if len(out) <= avail {
			return len(out), nil
		}
		if _, err := b.growTo(at + len(out)); err != nil {
			return 0, err
		}
	}
	return 0, fmt.Errorf("%w after %d attempts", ErrFormat, maxFormatAttempts)
}
