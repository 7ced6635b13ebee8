package bitfield

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/assert"
)

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field")

	fh, err := os.Create(path)
	assert.NoError(t, err)
	defer fh.Close()

	ff, err := OpenFile(fh, 1000)
	assert.NoError(t, err)
	assert.Equal(t, ff.Len(), 8*Size(1000))

	assert.NoError(t, ff.PutUintn(990, 0x2aa, 10))
	assert.NoError(t, ff.SetBit(0))
	assert.NoError(t, ff.Sync())
	assert.NoError(t, ff.Close())

	// the mapping is shared, so a fresh mapping sees the writes
	ff, err = OpenFile(fh, 1000)
	assert.NoError(t, err)
	defer func() { assert.NoError(t, ff.Close()) }()

	v, err := ff.Uintn(990, 10)
	assert.NoError(t, err)
	assert.Equal(t, v, uint32(0x2aa))

	b, err := ff.Bit(0)
	assert.NoError(t, err)
	assert.Equal(t, b, 1)
}
