// Package png embeds and extracts character-card documents stored in
// the tEXt chunks of a PNG file.
//
// Cards are kept as base64 of their UTF-8 JSON text under the "chara"
// (Character Card V2) or "ccv3" (Character Card V3) keyword. Rewrites
// leave every other chunk, including all pixel data, byte for byte
// unmodified.
package png

import (
	"bytes"
	"encoding/binary"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

const (
	chunkTEXt = "tEXt"
	chunkIEND = "IEND"
)

// chunk overhead: 4-byte length, 4-byte type, 4-byte CRC
const chunkOverhead = 12

func hasSignature(p []byte) bool {
	return len(p) >= len(pngHeader) && string(p[:len(pngHeader)]) == pngHeader
}

// chunkReader walks the chunk sequence of a PNG buffer.
//
// It yields subslices of the source buffer and never copies chunk
// data. The walk ends after the IEND chunk, or silently when the
// remaining bytes cannot hold a complete chunk. A reader cannot be
// rewound; restart by creating a new one.
type chunkReader struct {
	p    []byte
	off  int
	done bool

	typ  string
	data []byte // chunk payload
	raw  []byte // full chunk span including length, type and CRC
}

func newChunkReader(p []byte) *chunkReader {
	return &chunkReader{p: p, off: len(pngHeader)}
}

// next advances to the next chunk.
func (r *chunkReader) next() bool {
	if r.done || r.off+chunkOverhead > len(r.p) {
		return false
	}

	n := int(binary.BigEndian.Uint32(r.p[r.off:]))
	end := r.off + chunkOverhead + n
	if n < 0 || end > len(r.p) {
		// declared length overruns the buffer
		return false
	}

	r.typ = string(r.p[r.off+4 : r.off+8])
	r.data = r.p[r.off+8 : r.off+8+n]
	r.raw = r.p[r.off:end]
	r.off = end

	if r.typ == chunkIEND {
		r.done = true
	}
	return true
}

// textKeyword returns the keyword of a tEXt chunk payload.
// It returns "" if the payload has no NUL separator or the
// keyword is empty.
func textKeyword(data []byte) string {
	i := bytes.IndexByte(data, 0)
	if i < 1 {
		return ""
	}
	return string(data[:i])
}
