package bitfield

//
// a 32-bit value at bit offset index generally straddles two adjacent
// slots. reads shift the low slot down and fold the high slot in; writes
// build a mask covering the bits below the field so both slots keep every
// bit they own outside it. that splice is the whole point of the package.
//

// rawUint32 reads 32 bits starting at index without a span check. When the
// high slot would be past the last whole slot the missing bits read as
// zero.
func (f *Field) rawUint32(index uint) uint32 {
	slot, off := index/32, index%32
	value := f.slot(slot) >> off
	if off != 0 && slot+1 < f.nslots {
		value |= f.slot(slot+1) << (32 - off)
	}
	return value
}

// rawPutUint32 writes 32 bits starting at index without a span check. When
// the high slot would be past the last whole slot the high remainder of
// value is dropped.
func (f *Field) rawPutUint32(index uint, value uint32) {
	slot, off := index/32, index%32
	if off == 0 {
		f.setSlot(slot, value)
		return
	}
	low := uint32(1)<<off - 1
	f.setSlot(slot, value<<off|f.slot(slot)&low)
	if slot+1 < f.nslots {
		f.setSlot(slot+1, value>>(32-off)|f.slot(slot+1)&^low)
	}
}

// Uint32 reads the 32-bit value starting at bit index.
func (f *Field) Uint32(index uint) (uint32, error) {
	if err := f.span(index, 32); err != nil {
		return 0, err
	}
	return f.rawUint32(index), nil
}

// PutUint32 writes value at bit index. Bits outside [index, index+32) are
// preserved.
func (f *Field) PutUint32(index uint, value uint32) error {
	if err := f.span(index, 32); err != nil {
		return err
	}
	f.rawPutUint32(index, value)
	return nil
}

// Uintn reads a bits-wide unsigned value starting at bit index, for bits
// in 1..32.
func (f *Field) Uintn(index, bits uint) (uint32, error) {
	switch {
	case bits == 0 || bits > 32:
		return 0, ErrInvalidWidth.New("width %d not in 1..32", bits)
	case bits == 1:
		v, err := f.Bit(index)
		return uint32(v), err
	case bits == 32:
		return f.Uint32(index)
	}
	if err := f.span(index, bits); err != nil {
		return 0, err
	}
	return f.rawUint32(index) & (1<<bits - 1), nil
}

// PutUintn writes the low bits many bits of value at bit index, for bits
// in 1..32. Bits outside [index, index+bits) are preserved.
func (f *Field) PutUintn(index uint, value uint32, bits uint) error {
	switch {
	case bits == 0 || bits > 32:
		return ErrInvalidWidth.New("width %d not in 1..32", bits)
	case bits == 1:
		return f.WriteBit(index, uint8(value&1))
	case bits == 32:
		return f.PutUint32(index, value)
	}
	if err := f.span(index, bits); err != nil {
		return err
	}

	// merge the masked value into the surrounding word: the xor form
	// selects, per bit, the existing word where mask is set and the new
	// value where it is clear.
	w := f.rawUint32(index)
	value &= 1<<bits - 1
	mask := ^uint32(0) << bits
	f.rawPutUint32(index, value^(w^value)&mask)
	return nil
}
