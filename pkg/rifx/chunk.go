package rifx

import (
	"encoding/binary"
	"fmt"
)

// Chunk describes one top-level chunk of a container. Offsets are absolute
// positions in the buffer the chunk was read from.
type Chunk struct {
	ID     [4]byte
	Size   uint32
	Offset int
}

// Name returns the chunk id as a string.
func (c Chunk) Name() string {
	return string(c.ID[:])
}

// DataOffset returns the position of the first data byte.
func (c Chunk) DataOffset() int {
	return c.Offset + ChunkHeaderSize
}

// End returns the position just past the last data byte, excluding padding.
func (c Chunk) End() int {
	return c.DataOffset() + int(c.Size)
}

// Next returns the position of the following chunk header.
func (c Chunk) Next() int {
	return c.End() + int(c.Size&1)
}

// Data returns the chunk payload as a sub-slice of data.
func (c Chunk) Data(data []byte) []byte {
	if c.End() > len(data) {
		return nil
	}
	return data[c.DataOffset():c.End()]
}

// ListType returns the form type of a LIST chunk, or "" for any other chunk.
func (c Chunk) ListType(data []byte) string {
	if c.Name() != IDList || c.Size < 4 {
		return ""
	}
	d := c.Data(data)
	if len(d) < 4 {
		return ""
	}
	return string(d[:4])
}

// Walk validates the file header and calls fn for each top-level chunk in
// file order until fn returns false or the buffer is exhausted.
func Walk(data []byte, fn func(Chunk) bool) error {
	if _, err := ParseHeader(data); err != nil {
		return err
	}
	off := HeaderSize
	for off < len(data) {
		c, err := chunkAt(data, off)
		if err != nil {
			return err
		}
		if !fn(c) {
			return nil
		}
		off = c.Next()
	}
	return nil
}

// Chunks returns every top-level chunk in file order.
func Chunks(data []byte) ([]Chunk, error) {
	var out []Chunk
	err := Walk(data, func(c Chunk) bool {
		out = append(out, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Locate returns the first top-level chunk with the given id.
func Locate(data []byte, id string) (Chunk, error) {
	var (
		found Chunk
		ok    bool
	)
	err := Walk(data, func(c Chunk) bool {
		if c.Name() == id {
			found, ok = c, true
			return false
		}
		return true
	})
	if err != nil {
		return Chunk{}, err
	}
	if !ok {
		return Chunk{}, fmt.Errorf("%w: %q", ErrChunkNotFound, id)
	}
	return found, nil
}

// LocateHead returns the absolute offset of the head chunk's data.
func LocateHead(data []byte) (int, error) {
	c, err := Locate(data, IDHead)
	if err != nil {
		return 0, err
	}
	return c.DataOffset(), nil
}

func chunkAt(data []byte, off int) (Chunk, error) {
	if len(data)-off < ChunkHeaderSize {
		return Chunk{}, fmt.Errorf("%w: partial chunk header at offset %d", ErrTruncatedChunk, off)
	}
	var c Chunk
	copy(c.ID[:], data[off:off+4])
	c.Size = binary.BigEndian.Uint32(data[off+4 : off+8])
	c.Offset = off

	// uint64 keeps the bound check overflow-free on 32-bit platforms.
	end := uint64(off) + ChunkHeaderSize + uint64(c.Size)
	if end > uint64(len(data)) {
		return Chunk{}, fmt.Errorf("%w: %q at offset %d declares %d bytes, %d available",
			ErrTruncatedChunk, c.Name(), off, c.Size, len(data)-off-ChunkHeaderSize)
	}
	return c, nil
}
