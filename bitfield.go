// Package bitfield treats a caller-owned byte region as a densely packed,
// bit-addressable store. Bits are indexed zero-based, least significant bit
// of the first 32-bit slot first, and multi-bit fields of 1 to 32 bits can
// be read and written at any bit offset, splicing across slot boundaries.
//
// A Field never allocates, resizes, or frees the region it is bound to.
// It performs no internal synchronization: writes narrower than a slot are
// read-modify-write and must be externally serialized if shared.
package bitfield

import (
	"encoding/binary"

	"github.com/zeebo/errs"
)

var (
	// ErrOutOfRange is returned when an index plus width does not fit the
	// bit capacity of the field.
	ErrOutOfRange = errs.Class("bitfield: out of range")

	// ErrInvalidWidth is returned for field widths outside 1..32.
	ErrInvalidWidth = errs.Class("bitfield: invalid width")
)

// Size returns the number of bytes required to back a field of nbits bits,
// rounded up to whole 32-bit slots. Callers must size their regions with
// this formula.
func Size(nbits uint) uint { return 4 * ((nbits + 31) / 32) }

// Field is a non-owning view over a byte region interpreted as a sequence
// of little-endian 32-bit slots. The region must outlive the Field and its
// length should be a multiple of 4: a trailing partial slot is not
// addressable and accesses into it report ErrOutOfRange.
type Field struct {
	area   []byte
	size   uint // bit capacity, 8 * len(area)
	nslots uint // whole 32-bit slots, len(area) / 4
}

// New binds a Field over area. The caller keeps ownership of area and is
// responsible for any concurrent access discipline.
func New(area []byte) *Field {
	return &Field{
		area:   area,
		size:   8 * uint(len(area)),
		nslots: uint(len(area)) / 4,
	}
}

// Len returns the bit capacity of the field.
func (f *Field) Len() uint { return f.size }

// Slots returns the number of whole 32-bit slots backing the field.
func (f *Field) Slots() uint { return f.nslots }

// span checks that bits many bits starting at index fit the addressable
// range. Only whole slots are addressable, so on a mis-sized region this
// is smaller than the nominal bit capacity.
func (f *Field) span(index, bits uint) error {
	addr := 32 * f.nslots
	if index > addr || bits > addr-index {
		return ErrOutOfRange.New("bit %d width %d exceeds capacity %d", index, bits, addr)
	}
	return nil
}

func (f *Field) slot(n uint) uint32 {
	return binary.LittleEndian.Uint32(f.area[4*n:])
}

func (f *Field) setSlot(n uint, v uint32) {
	binary.LittleEndian.PutUint32(f.area[4*n:], v)
}

// Bit returns 1 if the bit at index is set, else 0.
func (f *Field) Bit(index uint) (uint8, error) {
	if err := f.span(index, 1); err != nil {
		return 0, err
	}
	return uint8(f.slot(index/32) >> (index % 32) & 1), nil
}

// SetBit sets the bit at index to 1.
func (f *Field) SetBit(index uint) error {
	if err := f.span(index, 1); err != nil {
		return err
	}
	f.setSlot(index/32, f.slot(index/32)|1<<(index%32))
	return nil
}

// ClearBit sets the bit at index to 0.
func (f *Field) ClearBit(index uint) error {
	if err := f.span(index, 1); err != nil {
		return err
	}
	f.setSlot(index/32, f.slot(index/32)&^(1<<(index%32)))
	return nil
}

// ToggleBit flips the bit at index.
func (f *Field) ToggleBit(index uint) error {
	if err := f.span(index, 1); err != nil {
		return err
	}
	f.setSlot(index/32, f.slot(index/32)^1<<(index%32))
	return nil
}

// WriteBit sets the bit at index if value is non-zero and clears it
// otherwise.
func (f *Field) WriteBit(index uint, value uint8) error {
	if value != 0 {
		return f.SetBit(index)
	}
	return f.ClearBit(index)
}
