package bitfield

import (
	"os"

	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"golang.org/x/sys/unix"
)

// FileField is a Field whose backing region is a shared memory mapping of
// a file, so every write lands in the page cache and survives a Sync. The
// file itself stays owned by the caller; Close only drops the mapping.
type FileField struct {
	Field
	mapping []byte
}

// OpenFile grows fh to hold at least nbits bits, rounded up to a whole
// page, maps it read-write shared and binds a Field over the mapping. The
// field's capacity is the usual Size(nbits) worth of bits, not the full
// page.
func OpenFile(fh *os.File, nbits uint) (_ *FileField, err error) {
	defer mon.Start().Stop(&err)

	pageSize := int64(unix.Getpagesize())
	size := (int64(Size(nbits)) + pageSize - 1) / pageSize * pageSize

	if err := fh.Truncate(size); err != nil {
		return nil, errs.Wrap(err)
	}

	buf, err := unix.Mmap(int(fh.Fd()), 0, int(size),
		unix.PROT_WRITE|unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	ff := &FileField{mapping: buf}
	ff.Field = *New(buf[:Size(nbits)])
	return ff, nil
}

// Sync flushes the mapping to the file.
func (ff *FileField) Sync() (err error) {
	defer mon.Start().Stop(&err)
	return errs.Wrap(unix.Msync(ff.mapping, unix.MS_SYNC))
}

// Close unmaps the region. The Field must not be used afterward.
func (ff *FileField) Close() error {
	ff.Field = Field{}
	return errs.Wrap(unix.Munmap(ff.mapping))
}
