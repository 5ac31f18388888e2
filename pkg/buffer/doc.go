// Package buffer provides GrowBuffer, a growable contiguous byte buffer with
// a read cursor.
//
// The valid data is the window [Offset(), Offset()+Len()) inside an
// allocation of Cap() bytes. Appends land at the end of the window and grow
// the allocation geometrically when needed: the new size starts at twice the
// old one (at least MinCapacity) and doubles until the request fits. Growth
// never moves data and zero-fills the new tail.
//
// Reads consume from the front. SafeShift and SafeExtract only advance the
// cursor; Shift and Extract additionally compact, moving the remaining data
// to offset 0 once it is smaller than the consumed prefix.
//
// Counts larger than Len() or negative fail with ErrOutOfRange and leave the
// buffer untouched. Growth beyond WithMaxCapacity fails with ErrAllocation.
//
// A GrowBuffer has a single owner and is not safe for concurrent use. Slices
// returned by Bytes are invalidated by any call that may grow the buffer.
//
// Example usage:
//
//	b := buffer.Grow()
//	defer b.Close()
//
//	b.AppendUint32(5)
//	b.WriteString("hello")
//
//	n, _ := b.ExtractUint32()
//	msg := make([]byte, n)
//	b.Extract(msg)
package buffer
