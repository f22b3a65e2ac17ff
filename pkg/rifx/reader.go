package rifx

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a container loaded read-only into memory.
type File struct {
	Data    []byte
	Header  Header
	mmapped bool
}

// Open maps a container file read-only and validates its header.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrInvalidContainer
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, ErrInvalidContainer
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		rf, parseErr := newFile(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return rf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return newFile(data, false)
}

// OpenReaderAt loads and validates a container from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < HeaderSize || size > int64(int(^uint(0)>>1)) {
		return nil, ErrInvalidContainer
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return newFile(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func newFile(data []byte, mmapped bool) (*File, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, Header: hdr, mmapped: mmapped}, nil
}

// Close releases any mmap backing. Data must not be used afterwards.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}
