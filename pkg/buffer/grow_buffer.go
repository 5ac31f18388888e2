package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// MinCapacity is the initial allocation of a GrowBuffer and the floor for
// every growth step.
const MinCapacity = 120

var (
	// ErrAllocation is returned when the buffer cannot grow to the requested
	// size, either because the size overflows or because it exceeds the
	// maximum capacity configured with WithMaxCapacity.
	ErrAllocation = errors.New("buffer: allocation failed")

	// ErrOutOfRange is returned when an operation is asked to consume, extract
	// or copy more bytes than the buffer holds, or a negative count.
	ErrOutOfRange = errors.New("buffer: out of range")
)

// GrowBuffer is a growable, contiguous byte buffer with a read cursor.
//
// The logical content is the window [off, off+n) inside an allocation of
// len(buf) bytes:
//
//	  <---             allocated            --->
//	           <--- length ---> <--- unused --->
//	 |........|................|................|
//	 ^ 0      ^ off            ^ end
//
// Bytes before off have been consumed but not yet reclaimed. Compact moves
// the data back to offset zero when the consumed prefix outgrows the data.
//
// GrowBuffer is not safe for concurrent use. Slices returned by Bytes are
// invalidated by any call that may grow the buffer.
type GrowBuffer struct {
	buf    []byte
	off    int
	n      int
	closed bool

	maxCap int
	logger *slog.Logger

	growths     int
	compactions int
}

// Option configures a GrowBuffer.
type Option func(*GrowBuffer)

// WithMaxCapacity limits the allocation to n bytes. Growth beyond the limit
// fails with ErrAllocation. Zero means unlimited. The limit also caps the
// initial allocation, taking precedence over MinCapacity.
func WithMaxCapacity(n int) Option {
	return func(b *GrowBuffer) {
		b.maxCap = n
	}
}

// WithLogger sets the logger used to report growth and compaction at debug
// level.
func WithLogger(logger *slog.Logger) Option {
	return func(b *GrowBuffer) {
		b.logger = logger
	}
}

// Grow creates an empty GrowBuffer with MinCapacity bytes allocated.
func Grow(opts ...Option) *GrowBuffer {
	return GrowN(MinCapacity, opts...)
}

// GrowN creates an empty GrowBuffer with at least n bytes allocated. Values
// below MinCapacity are raised to MinCapacity, and the result is then
// lowered to the WithMaxCapacity limit if one is set.
func GrowN(n int, opts ...Option) *GrowBuffer {
	b := &GrowBuffer{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	size := max(n, MinCapacity)
	if b.maxCap > 0 {
		size = min(size, b.maxCap)
	}
	b.buf = make([]byte, size)
	return b
}

func (b *GrowBuffer) end() int {
	return b.off + b.n
}

// Len returns the number of unconsumed bytes.
func (b *GrowBuffer) Len() int {
	return b.n
}

// Cap returns the size of the allocation.
func (b *GrowBuffer) Cap() int {
	return len(b.buf)
}

// Unused returns the free space after the data.
func (b *GrowBuffer) Unused() int {
	return len(b.buf) - b.end()
}

// Offset returns the size of the consumed prefix.
func (b *GrowBuffer) Offset() int {
	return b.off
}

// Bytes returns the unconsumed bytes. The slice aliases the buffer and is
// only valid until the next call that may grow or compact it. Its capacity is
// clipped so appending to it never writes into the buffer.
func (b *GrowBuffer) Bytes() []byte {
	return b.buf[b.off:b.end():b.end()]
}

// String returns the unconsumed bytes as a string.
func (b *GrowBuffer) String() string {
	if b == nil {
		return "<nil>"
	}
	return string(b.Bytes())
}

func (b *GrowBuffer) checkOpen(op string) error {
	if b.closed {
		return fmt.Errorf("buffer: %s closed buffer: %w", op, io.ErrClosedPipe)
	}
	return nil
}

func (b *GrowBuffer) checkRange(op string, n int) error {
	if n < 0 || n > b.n {
		return fmt.Errorf("%w: %s %d bytes with %d available", ErrOutOfRange, op, n, b.n)
	}
	return nil
}

// EnsureCapacity makes sure at least n bytes are free after the data,
// growing the allocation if needed, and returns the resulting capacity.
//
// The allocation doubles, starting from max(Cap()*2, MinCapacity), until the
// request fits. Data keeps its offsets and the new tail is zeroed. On error
// the buffer is left as it was.
func (b *GrowBuffer) EnsureCapacity(n int) (int, error) {
	if err := b.checkOpen("grow"); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative capacity %d", ErrOutOfRange, n)
	}
	if n > math.MaxInt-b.end() {
		return 0, fmt.Errorf("%w: %d bytes past %d overflows", ErrAllocation, n, b.end())
	}
	return b.growTo(b.end() + n)
}

// growTo grows the allocation to hold at least total bytes.
func (b *GrowBuffer) growTo(total int) (int, error) {
	if total <= len(b.buf) {
		return len(b.buf), nil
	}

	size := max(len(b.buf)*2, MinCapacity)
	for size < total {
		if size > math.MaxInt/2 {
			size = total
			break
		}
		size *= 2
	}
	if b.maxCap > 0 && size > b.maxCap {
		if total > b.maxCap {
			return 0, fmt.Errorf("%w: need %d bytes, limit %d", ErrAllocation, total, b.maxCap)
		}
		size = b.maxCap
	}

	next, err := allocate(size)
	if err != nil {
		return 0, err
	}
	copy(next, b.buf)
	b.logger.Debug("buffer grow", "from", len(b.buf), "to", size, "length", b.n, "offset", b.off)
	b.buf = next
	b.growths++
	return size, nil
}

// allocate turns the runtime panic for an impossible slice length into
// ErrAllocation. Exhausting memory is still fatal.
func allocate(size int) (p []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %d bytes: %v", ErrAllocation, size, r)
		}
	}()
	return make([]byte, size), nil
}

// Set replaces the data with p, starting at the current cursor. The cursor
// itself is not moved; call Reset first for a full rewrite from offset zero.
func (b *GrowBuffer) Set(p []byte) error {
	if err := b.checkOpen("set"); err != nil {
		return err
	}
	if len(p) > math.MaxInt-b.off {
		return fmt.Errorf("%w: %d bytes past %d overflows", ErrAllocation, len(p), b.off)
	}
	if _, err := b.growTo(b.off + len(p)); err != nil {
		return err
	}
	copy(b.buf[b.off:], p)
	b.n = len(p)
	return nil
}

// Append adds p after the data.
func (b *GrowBuffer) Append(p []byte) error {
	if err := b.checkOpen("append to"); err != nil {
		return err
	}
	if _, err := b.EnsureCapacity(len(p)); err != nil {
		return err
	}
	copy(b.buf[b.end():], p)
	b.n += len(p)
	return nil
}

// Write appends p and implements io.Writer.
func (b *GrowBuffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString appends s and implements io.StringWriter.
func (b *GrowBuffer) WriteString(s string) (int, error) {
	if err := b.checkOpen("append to"); err != nil {
		return 0, err
	}
	if _, err := b.EnsureCapacity(len(s)); err != nil {
		return 0, err
	}
	copy(b.buf[b.end():], s)
	b.n += len(s)
	return len(s), nil
}

// WriteByte appends c and implements io.ByteWriter.
func (b *GrowBuffer) WriteByte(c byte) error {
	if err := b.checkOpen("append to"); err != nil {
		return err
	}
	if _, err := b.EnsureCapacity(1); err != nil {
		return err
	}
	b.buf[b.end()] = c
	b.n++
	return nil
}

// AppendUint32 appends v as 4 bytes in network byte order.
func (b *GrowBuffer) AppendUint32(v uint32) error {
	if err := b.checkOpen("append to"); err != nil {
		return err
	}
	if _, err := b.EnsureCapacity(4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b.buf[b.end():], v)
	b.n += 4
	return nil
}

// cstring cuts s at its first NUL byte.
func cstring(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// SetString replaces the data with s, up to its first NUL byte, and zeroes
// the rest of the allocation after it.
func (b *GrowBuffer) SetString(s string) error {
	s = cstring(s)
	if err := b.checkOpen("set"); err != nil {
		return err
	}
	if len(s) > math.MaxInt-b.off {
		return fmt.Errorf("%w: %d bytes past %d overflows", ErrAllocation, len(s), b.off)
	}
	if _, err := b.growTo(b.off + len(s)); err != nil {
		return err
	}
	copy(b.buf[b.off:], s)
	clear(b.buf[b.off+len(s):])
	b.n = len(s)
	return nil
}

// AppendString appends s, up to its first NUL byte, and returns the new
// length.
func (b *GrowBuffer) AppendString(s string) (int, error) {
	if _, err := b.WriteString(cstring(s)); err != nil {
		return 0, err
	}
	return b.n, nil
}

// Compact moves the data to the start of the allocation when the consumed
// prefix is larger than the data itself. It reports whether the data was
// moved.
func (b *GrowBuffer) Compact() bool {
	if b.closed || b.n >= b.off {
		return false
	}
	copy(b.buf, b.buf[b.off:b.end()])
	b.logger.Debug("buffer compact", "reclaimed", b.off, "length", b.n)
	b.off = 0
	b.compactions++
	return true
}

// SafeShift consumes n bytes from the front without moving any data.
func (b *GrowBuffer) SafeShift(n int) error {
	if err := b.checkOpen("shift"); err != nil {
		return err
	}
	if err := b.checkRange("shift", n); err != nil {
		return err
	}
	b.off += n
	b.n -= n
	return nil
}

// Shift consumes n bytes from the front and then compacts if worthwhile.
func (b *GrowBuffer) Shift(n int) error {
	if err := b.SafeShift(n); err != nil {
		return err
	}
	b.Compact()
	return nil
}

// SafeExtract copies len(dst) bytes from the front into dst and consumes
// them without moving any data. Nothing is copied or consumed when fewer
// than len(dst) bytes are available.
func (b *GrowBuffer) SafeExtract(dst []byte) error {
	if err := b.checkOpen("extract from"); err != nil {
		return err
	}
	if err := b.checkRange("extract", len(dst)); err != nil {
		return err
	}
	copy(dst, b.buf[b.off:])
	return b.SafeShift(len(dst))
}

// Extract is SafeExtract followed by Compact.
func (b *GrowBuffer) Extract(dst []byte) error {
	if err := b.SafeExtract(dst); err != nil {
		return err
	}
	b.Compact()
	return nil
}

// PeekUint32 decodes the first 4 bytes as a big-endian integer without
// consuming them.
func (b *GrowBuffer) PeekUint32() (uint32, error) {
	if err := b.checkOpen("read from"); err != nil {
		return 0, err
	}
	if err := b.checkRange("peek", 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b.buf[b.off:]), nil
}

// ExtractUint32 consumes the first 4 bytes as a big-endian integer.
func (b *GrowBuffer) ExtractUint32() (uint32, error) {
	v, err := b.PeekUint32()
	if err != nil {
		return 0, err
	}
	return v, b.Shift(4)
}

// Copy appends the first n unconsumed bytes of src to dst. src is not
// modified; dst and src may be the same buffer.
func Copy(dst, src *GrowBuffer, n int) error {
	if err := src.checkOpen("copy from"); err != nil {
		return err
	}
	if err := src.checkRange("copy", n); err != nil {
		return err
	}
	// Growing dst may replace dst.buf; the old array stays valid for the copy.
	return dst.Append(src.buf[src.off : src.off+n])
}

// Reset empties the buffer and rewinds the cursor, keeping the allocation.
func (b *GrowBuffer) Reset() {
	b.off = 0
	b.n = 0
}

// Close releases the allocation. Further operations fail with
// io.ErrClosedPipe. Close is safe to call on a nil or closed buffer.
func (b *GrowBuffer) Close() error {
	if b == nil || b.closed {
		return nil
	}
	b.closed = true
	b.buf = nil
	b.off = 0
	b.n = 0
	return nil
}
