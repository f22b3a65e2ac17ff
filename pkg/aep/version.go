// Package aep detects and rewrites the version signature of After Effects
// project files.
//
// A project's version is identified by six bytes inside the data of its head
// chunk. Conversion replaces exactly those six bytes with the signature of an
// older version and leaves every other byte of the file untouched.
package aep

import (
	"fmt"
	"strconv"
	"strings"
)

// Version identifies a supported After Effects release family by its major
// version number. Larger values are newer.
type Version uint8

const (
	Version23 Version = 23
	Version24 Version = 24
	Version25 Version = 25
)

// Signature holds the byte values found at SignatureOffsets.
type Signature [6]byte

// SignatureOffsets are the head-data-relative positions of the signature bytes.
var SignatureOffsets = [6]int{1, 3, 4, 5, 6, 7}

// headSpan is the minimum head data length able to hold every signature byte.
const headSpan = 8

// Legacy22Signature is the 22.x signature. Files converted to it were observed
// to be structurally broken, so 22.x is not part of the supported set.
var Legacy22Signature = Signature{0x5d, 0x2b, 0x0b, 0x33, 0x06, 0x3b}

// table is ordered newest first and never modified.
var table = [...]struct {
	version Version
	sig     Signature
}{
	{Version25, Signature{0x60, 0x01, 0x0f, 0x08, 0x86, 0x44}},
	{Version24, Signature{0x5f, 0x05, 0x0f, 0x02, 0x86, 0x34}},
	{Version23, Signature{0x5e, 0x09, 0x0b, 0x3b, 0x06, 0x37}},
}

// AllVersions returns the supported versions, newest first.
func AllVersions() []Version {
	out := make([]Version, len(table))
	for i := range table {
		out[i] = table[i].version
	}
	return out
}

// SignatureFor returns the signature of a supported version.
func SignatureFor(v Version) (Signature, error) {
	for i := range table {
		if table[i].version == v {
			return table[i].sig, nil
		}
	}
	return Signature{}, &UnsupportedVersionError{Version: v.String()}
}

// Supported reports whether v has a table entry.
func (v Version) Supported() bool {
	_, err := SignatureFor(v)
	return err == nil
}

// TargetsFor returns the supported versions strictly older than source, newest first.
func TargetsFor(source Version) []Version {
	var out []Version
	for i := range table {
		if table[i].version < source {
			out = append(out, table[i].version)
		}
	}
	return out
}

func (v Version) String() string {
	return strconv.Itoa(int(v)) + ".x"
}

// Label is the display form used by After Effects, eg "AE 25.x".
func (v Version) Label() string {
	return "AE " + v.String()
}

// Suffix is the file-name form, eg "AE25x".
func (v Version) Suffix() string {
	return "AE" + strconv.Itoa(int(v)) + "x"
}

// ParseVersion accepts "25", "25.x", "AE 25.x", "AE25x" and similar spellings,
// case-insensitively. Versions without a table entry are rejected.
func ParseVersion(s string) (Version, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), ""))
	norm = strings.TrimPrefix(norm, "ae")
	norm = strings.TrimSuffix(norm, "x")
	norm = strings.TrimSuffix(norm, ".")
	n, err := strconv.Atoi(norm)
	if err != nil || n <= 0 || n > 255 {
		return 0, &UnsupportedVersionError{Version: s}
	}
	v := Version(n)
	if !v.Supported() {
		return 0, &UnsupportedVersionError{Version: s}
	}
	return v, nil
}

// String renders the signature as space-separated hex bytes.
func (s Signature) String() string {
	return fmt.Sprintf("% x", s[:])
}

// Hex renders the signature as contiguous lowercase hex.
func (s Signature) Hex() string {
	return fmt.Sprintf("%x", s[:])
}
