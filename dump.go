package bitfield

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
)

// Dump copies the first n bytes of the backing region into dst verbatim.
// It fails if n exceeds the byte capacity of the field or dst is too
// short.
func (f *Field) Dump(dst []byte, n uint) error {
	if n > f.size/8 {
		return ErrOutOfRange.New("%d bytes exceeds capacity %d", n, f.size/8)
	}
	if uint(len(dst)) < n {
		return ErrOutOfRange.New("destination holds %d of %d bytes", len(dst), n)
	}
	copy(dst, f.area[:n])
	return nil
}

// Snapshot writes a zstd-compressed copy of the backing region to w. The
// snapshot can be loaded back with Restore on a field of the same size.
func (f *Field) Snapshot(w io.Writer) (err error) {
	defer mon.Start().Stop(&err)

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errs.Wrap(err)
	}
	if _, err := enc.Write(f.area); err != nil {
		return errs.Combine(err, enc.Close())
	}
	return errs.Wrap(enc.Close())
}

// Restore overwrites the backing region with a snapshot read from r. The
// decompressed payload must be exactly as long as the region.
func (f *Field) Restore(r io.Reader) (err error) {
	defer mon.Start().Stop(&err)

	dec, err := zstd.NewReader(r)
	if err != nil {
		return errs.Wrap(err)
	}
	defer dec.Close()

	if _, err := io.ReadFull(dec, f.area); err != nil {
		return errs.Wrap(err)
	}
	if n, err := dec.Read(make([]byte, 1)); n != 0 || err != io.EOF {
		return errs.New("snapshot larger than %d byte region", len(f.area))
	}
	return nil
}
