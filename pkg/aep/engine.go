package aep

import (
	"fmt"

	"github.com/samcharles93/aepdown/pkg/rifx"
)

// Detection is the result of inspecting a project buffer.
type Detection struct {
	Version   Version
	Signature Signature
	// HeadOffset is the absolute offset of the head chunk data.
	HeadOffset int
}

// ReadSignature locates the head chunk and returns the signature bytes and
// the absolute head data offset. It does not consult the signature table.
func ReadSignature(buf []byte) (Signature, int, error) {
	head, err := rifx.Locate(buf, rifx.IDHead)
	if err != nil {
		return Signature{}, 0, err
	}
	if head.Size < headSpan {
		return Signature{}, 0, fmt.Errorf("%w: head chunk holds %d bytes, need %d",
			ErrTruncatedChunk, head.Size, headSpan)
	}
	off := head.DataOffset()
	var sig Signature
	for i, rel := range SignatureOffsets {
		sig[i] = buf[off+rel]
	}
	return sig, off, nil
}

// Detect identifies the version of a project buffer. Matching is exact;
// signatures without a table entry fail with ErrUnknownVersion.
func Detect(buf []byte) (Detection, error) {
	sig, off, err := ReadSignature(buf)
	if err != nil {
		return Detection{}, err
	}
	for i := range table {
		if table[i].sig == sig {
			return Detection{Version: table[i].version, Signature: sig, HeadOffset: off}, nil
		}
	}
	return Detection{}, &UnknownSignatureError{Signature: sig}
}

// DetectVersion returns the version of a project buffer.
func DetectVersion(buf []byte) (Version, error) {
	d, err := Detect(buf)
	if err != nil {
		return 0, err
	}
	return d.Version, nil
}

// Convert returns a copy of buf carrying the signature of target. The copy
// differs from buf only at the six signature positions. buf is not modified
// and not retained.
func Convert(buf []byte, target Version) ([]byte, error) {
	d, sig, err := validate(buf, target)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	rewrite(out, d.HeadOffset, sig)
	return out, nil
}

// ConvertInPlace rewrites the signature of buf to target and returns the
// detected source version. Every precondition is checked before the first
// write, so on error buf is unchanged.
func ConvertInPlace(buf []byte, target Version) (Version, error) {
	d, sig, err := validate(buf, target)
	if err != nil {
		return 0, err
	}
	rewrite(buf, d.HeadOffset, sig)
	return d.Version, nil
}

func validate(buf []byte, target Version) (Detection, Signature, error) {
	sig, err := SignatureFor(target)
	if err != nil {
		return Detection{}, Signature{}, err
	}
	d, err := Detect(buf)
	if err != nil {
		return Detection{}, Signature{}, err
	}
	if target >= d.Version {
		return Detection{}, Signature{}, &InvalidTargetError{Source: d.Version, Target: target}
	}
	return d, sig, nil
}

func rewrite(buf []byte, headOff int, sig Signature) {
	for i, rel := range SignatureOffsets {
		buf[headOff+rel] = sig[i]
	}
}
