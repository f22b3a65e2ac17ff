package rifx

import "errors"

var (
	ErrInvalidContainer = errors.New("rifx: not a RIFX/Egg! container")
	ErrChunkNotFound    = errors.New("rifx: chunk not found")
	ErrTruncatedChunk   = errors.New("rifx: truncated chunk")
)
