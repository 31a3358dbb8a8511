// Package bitblit copies and merges sequences of bits between byte buffers at
// arbitrary bit offsets.
//
// Bits are addressed MSB first: bit 0 of a buffer is the most significant bit
// of its first byte. Source and destination sequences must not overlap. Only
// bytes holding bits of either sequence are accessed, so callers may pass
// buffers that end exactly at the last bit.
package bitblit

// Op selects how source bits are merged into the destination.
type Op uint8

const (
	Nop    Op = iota // dst unchanged
	Set              // dst = src
	Or               // dst |= src
	And              // dst &= src
	NotSet           // dst = ^src
	OrNot            // dst |= ^src
	AndNot           // dst &^= src
	Clear            // dst = 0
	Fill             // dst = 1
)

var opNames = [...]string{"Nop", "Set", "Or", "And", "NotSet", "OrNot", "AndNot", "Clear", "Fill"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "Op(?)"
}

// UsesSource reports whether op reads the source sequence.
func (op Op) UsesSource() bool {
	return op >= Set && op <= AndNot
}

func (op Op) merge(d, s byte) byte {
	switch op {
	case Set:
		return s
	case Or:
		return d | s
	case And:
		return d & s
	case NotSet:
		return ^s
	case OrNot:
		return d | ^s
	case AndNot:
		return d &^ s
	case Clear:
		return 0
	case Fill:
		return 0xff
	}
	return d
}

// load returns n bits (1..8) starting at bit off of src, left aligned.
func load(src []byte, off int, n int) byte {
	i, o := off>>3, uint(off&7)
	bits := src[i] << o
	if o != 0 && int(8-o) < n {
		bits |= src[i+1] >> (8 - o)
	}
	return bits &^ (0xff >> uint(n))
}

// store merges the left aligned n bits (1..8) into dst at bit off.
func store(op Op, dst []byte, off int, bits byte, n int) {
	i, o := off>>3, uint(off&7)
	mask := ^byte(0xff >> uint(n))
	m := mask >> o
	dst[i] = dst[i]&^m | op.merge(dst[i], bits>>o)&m
	if o != 0 && int(8-o) < n {
		m = mask << (8 - o)
		dst[i+1] = dst[i+1]&^m | op.merge(dst[i+1], bits<<(8-o))&m
	}
}

// Blit merges n bits of src starting at srcOff into dst starting at dstOff.
// The source is not accessed for ops that do not use it, src may be nil then.
func Blit(op Op, dst []byte, dstOff int, src []byte, srcOff int, n int) {
	if op == Nop {
		return
	}
	useSrc := op.UsesSource()
	for n > 0 {
		k := min(n, 8)
		var bits byte
		if useSrc {
			bits = load(src, srcOff, k)
		}
		store(op, dst, dstOff, bits, k)
		srcOff += k
		dstOff += k
		n -= k
	}
}

// Copy copies n bits from src to dst.
func Copy(dst []byte, dstOff int, src []byte, srcOff int, n int) {
	Blit(Set, dst, dstOff, src, srcOff, n)
}

// Merge ORs n bits from src into dst.
func Merge(dst []byte, dstOff int, src []byte, srcOff int, n int) {
	Blit(Or, dst, dstOff, src, srcOff, n)
}

// SetBits sets n bits of dst starting at dstOff to bit.
func SetBits(dst []byte, dstOff int, n int, bit bool) {
	if bit {
		Blit(Fill, dst, dstOff, nil, 0, n)
	} else {
		Blit(Clear, dst, dstOff, nil, 0, n)
	}
}

// Get returns the n bit (n <= 8) value at bit off of src.
func Get(src []byte, off int, n int) uint8 {
	return load(src, off, n) >> (8 - uint(n))
}

// Put stores the low n bits (n <= 8) of v at bit off of dst.
func Put(dst []byte, off int, n int, v uint8) {
	store(Set, dst, off, v<<(8-uint(n)), n)
}

// ReverseBytes reverses the order of the bytes in b.
func ReverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
