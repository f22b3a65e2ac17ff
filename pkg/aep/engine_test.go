package aep_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/samcharles93/aepdown/internal/aeptest"
	"github.com/samcharles93/aepdown/pkg/aep"
	"github.com/samcharles93/aepdown/pkg/rifx"
)

// scenario is the 32-byte header plus 12 bytes of 25.x head data.
func scenario() []byte {
	head := make([]byte, 12)
	sig := []byte{0x60, 0x01, 0x0f, 0x08, 0x86, 0x44}
	for i, rel := range aep.SignatureOffsets {
		head[rel] = sig[i]
	}
	return aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: head})
}

func TestScenarioDowngrade25To23(t *testing.T) {
	t.Parallel()

	in := scenario()
	if len(in) != 32 {
		t.Fatalf("scenario length: got %d want 32", len(in))
	}
	orig := append([]byte(nil), in...)

	v, err := aep.DetectVersion(in)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if v != aep.Version25 {
		t.Fatalf("detect: got %s want 25.x", v)
	}

	out, err := aep.Convert(in, aep.Version23)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !bytes.Equal(in, orig) {
		t.Fatalf("Convert modified its input")
	}
	got := []byte{out[21], out[23], out[24], out[25], out[26], out[27]}
	want := []byte{0x5e, 0x09, 0x0b, 0x3b, 0x06, 0x37}
	if !bytes.Equal(got, want) {
		t.Fatalf("rewritten bytes: got % x want % x", got, want)
	}

	v, err = aep.DetectVersion(out)
	if err != nil {
		t.Fatalf("re-detect: %v", err)
	}
	if v != aep.Version23 {
		t.Fatalf("re-detect: got %s want 23.x", v)
	}
}

func TestScenarioSameVersionRejected(t *testing.T) {
	t.Parallel()

	_, err := aep.Convert(scenario(), aep.Version25)
	if !errors.Is(err, aep.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	var ite *aep.InvalidTargetError
	if !errors.As(err, &ite) || ite.Source != aep.Version25 || ite.Target != aep.Version25 {
		t.Fatalf("expected InvalidTargetError{25,25}, got %#v", err)
	}
}

func TestScenarioZeroSignatureUnknown(t *testing.T) {
	t.Parallel()

	buf := aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: make([]byte, 12)})
	_, err := aep.DetectVersion(buf)
	if !errors.Is(err, aep.ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
	var use *aep.UnknownSignatureError
	if !errors.As(err, &use) || use.Signature != (aep.Signature{}) {
		t.Fatalf("expected zero signature in error, got %#v", err)
	}
}

func TestDetectEachVersion(t *testing.T) {
	t.Parallel()

	for _, v := range aep.AllVersions() {
		d, err := aep.Detect(aeptest.Project(t, v))
		if err != nil {
			t.Fatalf("detect %s: %v", v, err)
		}
		if d.Version != v {
			t.Fatalf("detect: got %s want %s", d.Version, v)
		}
		if d.HeadOffset != rifx.HeaderSize+rifx.ChunkHeaderSize {
			t.Fatalf("head offset: got %d", d.HeadOffset)
		}
	}
}

func TestDetectLegacy22IsUnknown(t *testing.T) {
	t.Parallel()

	buf := aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: aeptest.Head(aep.Legacy22Signature)})
	if _, err := aep.DetectVersion(buf); !errors.Is(err, aep.ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion for 22.x signature, got %v", err)
	}
}

func TestDetectPartialMatchIsUnknown(t *testing.T) {
	t.Parallel()

	sig, _ := aep.SignatureFor(aep.Version24)
	sig[5] ^= 0xff
	buf := aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: aeptest.Head(sig)})
	if _, err := aep.DetectVersion(buf); !errors.Is(err, aep.ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion for near match, got %v", err)
	}
}

func TestConvertTouchesOnlySignatureBytes(t *testing.T) {
	t.Parallel()

	for _, src := range aep.AllVersions() {
		for _, dst := range aep.TargetsFor(src) {
			in := aeptest.Project(t, src)
			out, err := aep.Convert(in, dst)
			if err != nil {
				t.Fatalf("convert %s -> %s: %v", src, dst, err)
			}
			if len(out) != len(in) {
				t.Fatalf("length changed: %d -> %d", len(in), len(out))
			}

			headOff, err := rifx.LocateHead(in)
			if err != nil {
				t.Fatalf("locate head: %v", err)
			}
			allowed := make(map[int]bool)
			for _, rel := range aep.SignatureOffsets {
				allowed[headOff+rel] = true
			}
			for i := range in {
				if in[i] != out[i] && !allowed[i] {
					t.Fatalf("%s -> %s: byte %d changed outside the signature", src, dst, i)
				}
			}

			got, err := aep.DetectVersion(out)
			if err != nil || got != dst {
				t.Fatalf("%s -> %s: re-detect got %s, %v", src, dst, got, err)
			}
		}
	}
}

func TestConvertHeadAfterOtherChunks(t *testing.T) {
	t.Parallel()

	sig, _ := aep.SignatureFor(aep.Version24)
	in := aeptest.Build(
		aeptest.Chunk{ID: "nhed", Payload: []byte{9, 9, 9}},
		aeptest.Chunk{ID: rifx.IDList, Payload: []byte("Fold")},
		aeptest.Chunk{ID: rifx.IDHead, Payload: aeptest.Head(sig)},
	)
	out, err := aep.Convert(in, aep.Version23)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if v, err := aep.DetectVersion(out); err != nil || v != aep.Version23 {
		t.Fatalf("re-detect: got %s, %v", v, err)
	}
	// The outer size field and every chunk size are preserved.
	if binary.BigEndian.Uint32(out[4:8]) != binary.BigEndian.Uint32(in[4:8]) {
		t.Fatalf("outer size changed")
	}
}

func TestConvertRejectsNonOlderTargets(t *testing.T) {
	t.Parallel()

	for _, src := range aep.AllVersions() {
		for _, dst := range aep.AllVersions() {
			if dst < src {
				continue
			}
			in := aeptest.Project(t, src)
			orig := append([]byte(nil), in...)

			if _, err := aep.Convert(in, dst); !errors.Is(err, aep.ErrInvalidTarget) {
				t.Errorf("Convert %s -> %s: expected ErrInvalidTarget, got %v", src, dst, err)
			}
			if _, err := aep.ConvertInPlace(in, dst); !errors.Is(err, aep.ErrInvalidTarget) {
				t.Errorf("ConvertInPlace %s -> %s: expected ErrInvalidTarget, got %v", src, dst, err)
			}
			if !bytes.Equal(in, orig) {
				t.Errorf("%s -> %s: buffer modified on failure", src, dst)
			}
		}
	}
}

func TestConvertPreconditionErrors(t *testing.T) {
	t.Parallel()

	truncatedHead := aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: make([]byte, 12)})
	binary.BigEndian.PutUint32(truncatedHead[16:20], 100)

	shortHead := aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: []byte{0, 0x60, 0, 1}})

	tests := []struct {
		name   string
		buf    []byte
		target aep.Version
		want   error
		kind   string
	}{
		{"legacy target", aeptest.Project(t, aep.Version25), 22, aep.ErrUnsupportedVersion, "unsupported_version"},
		{"not a container", []byte("RIFF\x00\x00\x00\x04WAVE"), aep.Version23, aep.ErrInvalidContainer, "invalid_container"},
		{"no head", aeptest.Build(aeptest.Chunk{ID: rifx.IDList, Payload: []byte("Fold")}), aep.Version23, aep.ErrChunkNotFound, "chunk_not_found"},
		{"head past end", truncatedHead, aep.Version23, aep.ErrTruncatedChunk, "truncated_chunk"},
		{"head too short", shortHead, aep.Version23, aep.ErrTruncatedChunk, "truncated_chunk"},
		{"unknown source", aeptest.Build(aeptest.Chunk{ID: rifx.IDHead, Payload: make([]byte, 12)}), aep.Version23, aep.ErrUnknownVersion, "unknown_version"},
		{"same version", aeptest.Project(t, aep.Version23), aep.Version23, aep.ErrInvalidTarget, "invalid_target"},
	}
	for _, tc := range tests {
		orig := append([]byte(nil), tc.buf...)
		_, err := aep.ConvertInPlace(tc.buf, tc.target)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if got := aep.ErrorKind(err); got != tc.kind {
			t.Errorf("%s: ErrorKind got %q want %q", tc.name, got, tc.kind)
		}
		if !bytes.Equal(tc.buf, orig) {
			t.Errorf("%s: buffer modified on failure", tc.name)
		}
	}
}

func TestConvertInPlace(t *testing.T) {
	t.Parallel()

	buf := aeptest.Project(t, aep.Version25)
	src, err := aep.ConvertInPlace(buf, aep.Version24)
	if err != nil {
		t.Fatalf("convert in place: %v", err)
	}
	if src != aep.Version25 {
		t.Fatalf("source: got %s want 25.x", src)
	}
	if v, err := aep.DetectVersion(buf); err != nil || v != aep.Version24 {
		t.Fatalf("re-detect: got %s, %v", v, err)
	}
}

func TestConcurrentConversions(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := aep.Version23
			if i%2 == 0 {
				target = aep.Version24
			}
			out, err := aep.Convert(aeptest.Project(t, aep.Version25), target)
			if err != nil {
				errs <- err
				return
			}
			if v, err := aep.DetectVersion(out); err != nil || v != target {
				errs <- errors.New("re-detect mismatch")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent conversion: %v", err)
	}
}

func TestErrorKindForeignError(t *testing.T) {
	t.Parallel()

	if got := aep.ErrorKind(errors.New("disk full")); got != "" {
		t.Fatalf("ErrorKind for foreign error: got %q", got)
	}
	if got := aep.ErrorKind(nil); got != "" {
		t.Fatalf("ErrorKind(nil): got %q", got)
	}
}
