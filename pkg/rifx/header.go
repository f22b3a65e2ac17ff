package rifx

import "encoding/binary"

// Header is the fixed 12-byte file header.
type Header struct {
	Magic [4]byte
	Size  uint32
	Form  [4]byte
}

// Valid reports whether the header carries the RIFX magic and the Egg! form type.
func (h *Header) Valid() bool {
	return string(h.Magic[:]) == MagicRIFX && string(h.Form[:]) == FormEgg
}

// ParseHeader decodes and validates the file header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	hdr, ok := decodeHeader(data)
	if !ok || !hdr.Valid() {
		return Header{}, ErrInvalidContainer
	}
	return hdr, nil
}

// AppendHeader appends a RIFX/Egg! header declaring size remaining bytes.
func AppendHeader(dst []byte, size uint32) []byte {
	dst = append(dst, MagicRIFX...)
	dst = binary.BigEndian.AppendUint32(dst, size)
	return append(dst, FormEgg...)
}

// AppendChunk appends a chunk with the given id and payload, padding odd sizes.
// id must be exactly four bytes.
func AppendChunk(dst []byte, id string, payload []byte) []byte {
	dst = append(dst, id[:4]...)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	if len(payload)%2 == 1 {
		dst = append(dst, 0)
	}
	return dst
}

func decodeHeader(b []byte) (Header, bool) {
	if len(b) < HeaderSize {
		return Header{}, false
	}
	var h Header
	copy(h.Magic[:], b[0:4])
	h.Size = binary.BigEndian.Uint32(b[4:8])
	copy(h.Form[:], b[8:12])
	return h, true
}
