package bitfield

import "math"

// Float32 reads the 32 bits starting at index and reinterprets them as an
// IEEE-754 single precision float. Any bit pattern round-trips exactly,
// NaN and infinity encodings included.
func (f *Field) Float32(index uint) (float32, error) {
	v, err := f.Uint32(index)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// PutFloat32 writes the bit pattern of value at index.
func (f *Field) PutFloat32(index uint, value float32) error {
	return f.PutUint32(index, math.Float32bits(value))
}
