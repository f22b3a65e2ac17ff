// Package aeptest builds synthetic project containers for tests.
package aeptest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/aepdown/pkg/aep"
	"github.com/samcharles93/aepdown/pkg/rifx"
)

// HeadSize matches the head chunk length found in real projects.
const HeadSize = 12

// Chunk is an id and payload pair.
type Chunk struct {
	ID      string
	Payload []byte
}

// Build assembles a container from chunks with a correct outer size field.
func Build(chunks ...Chunk) []byte {
	var body []byte
	for _, c := range chunks {
		body = rifx.AppendChunk(body, c.ID, c.Payload)
	}
	out := rifx.AppendHeader(make([]byte, 0, rifx.HeaderSize+len(body)), uint32(4+len(body)))
	return append(out, body...)
}

// Head returns head chunk data carrying sig, with the non-signature bytes
// filled with a recognisable pattern.
func Head(sig aep.Signature) []byte {
	head := make([]byte, HeadSize)
	for i := range head {
		head[i] = byte(0xa0 + i)
	}
	for i, rel := range aep.SignatureOffsets {
		head[rel] = sig[i]
	}
	return head
}

// Project returns a minimal project for v: the head chunk first, followed by
// a LIST chunk and an odd-sized trailing chunk.
func Project(t testing.TB, v aep.Version) []byte {
	t.Helper()
	sig, err := aep.SignatureFor(v)
	if err != nil {
		t.Fatalf("signature for %s: %v", v, err)
	}
	return Build(
		Chunk{ID: rifx.IDHead, Payload: Head(sig)},
		Chunk{ID: rifx.IDList, Payload: []byte("Foldsome folder data")},
		Chunk{ID: "nnhd", Payload: []byte{1, 2, 3, 4, 5}},
	)
}

// WriteProject writes Project(v) to dir/name and returns the path.
func WriteProject(t testing.TB, dir, name string, v aep.Version) string {
	t.Helper()
	return WriteFile(t, dir, name, Project(t, v))
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
