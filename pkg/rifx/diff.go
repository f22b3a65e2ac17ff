package rifx

import "fmt"

// DiffKind classifies a difference between two chunks at the same index.
type DiffKind int

const (
	DiffRemoved DiffKind = iota + 1 // present only in the first container
	DiffAdded                       // present only in the second container
	DiffID
	DiffSize
	DiffContent
)

func (k DiffKind) String() string {
	switch k {
	case DiffRemoved:
		return "removed"
	case DiffAdded:
		return "added"
	case DiffID:
		return "id"
	case DiffSize:
		return "size"
	case DiffContent:
		return "content"
	default:
		return fmt.Sprintf("DiffKind(%d)", int(k))
	}
}

// maxDiffOffsets bounds the number of differing data offsets kept per chunk.
const maxDiffOffsets = 10

// ChunkDiff reports a difference between the chunks at Index in two containers.
// A or B is nil when the chunk exists on one side only. Offsets holds the first
// differing data positions, relative to the chunk data, for DiffContent.
type ChunkDiff struct {
	Index   int
	Kind    DiffKind
	A       *Chunk
	B       *Chunk
	Offsets []int
}

// Compare walks both containers and reports chunk-level differences in index order.
func Compare(a, b []byte) ([]ChunkDiff, error) {
	ca, err := Chunks(a)
	if err != nil {
		return nil, fmt.Errorf("first container: %w", err)
	}
	cb, err := Chunks(b)
	if err != nil {
		return nil, fmt.Errorf("second container: %w", err)
	}

	var diffs []ChunkDiff
	for i := 0; i < max(len(ca), len(cb)); i++ {
		switch {
		case i >= len(cb):
			diffs = append(diffs, ChunkDiff{Index: i, Kind: DiffRemoved, A: &ca[i]})
		case i >= len(ca):
			diffs = append(diffs, ChunkDiff{Index: i, Kind: DiffAdded, B: &cb[i]})
		case ca[i].ID != cb[i].ID:
			diffs = append(diffs, ChunkDiff{Index: i, Kind: DiffID, A: &ca[i], B: &cb[i]})
		case ca[i].Size != cb[i].Size:
			diffs = append(diffs, ChunkDiff{Index: i, Kind: DiffSize, A: &ca[i], B: &cb[i]})
		default:
			offs := differingOffsets(ca[i].Data(a), cb[i].Data(b))
			if len(offs) > 0 {
				diffs = append(diffs, ChunkDiff{Index: i, Kind: DiffContent, A: &ca[i], B: &cb[i], Offsets: offs})
			}
		}
	}
	return diffs, nil
}

func differingOffsets(a, b []byte) []int {
	var offs []int
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			offs = append(offs, i)
			if len(offs) == maxDiffOffsets {
				break
			}
		}
	}
	return offs
}
