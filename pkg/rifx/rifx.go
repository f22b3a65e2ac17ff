// Package rifx implements the subset of the RIFX container format used by
// After Effects project files.
//
// RIFX is the big-endian variant of RIFF. A project file starts with a
// 12-byte header ("RIFX", total size, form type "Egg!") followed by a flat
// sequence of chunks. Each chunk is a 4-byte ASCII id, a big-endian uint32
// size, size data bytes and one pad byte when size is odd. Nested LIST
// structures are exposed but not traversed.
package rifx

// Container constants are fixed by the file format.
const (
	// MagicRIFX opens every container.
	MagicRIFX = "RIFX"

	// FormEgg is the form type of After Effects projects.
	FormEgg = "Egg!"

	// HeaderSize is the size of the file header preceding the first chunk.
	HeaderSize = 12

	// ChunkHeaderSize is the size of a chunk id plus its size field.
	ChunkHeaderSize = 8
)

// Well-known chunk ids.
const (
	IDHead = "head"
	IDList = "LIST"
	IDNhed = "nhed"
	IDNnhd = "nnhd"
)
