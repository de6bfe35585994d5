package png

import (
	"encoding/base64"
	"encoding/binary"
)

// EmbedOptions selects the carrier keywords written by Embed.
// A nil options pointer writes both.
type EmbedOptions struct {
	WriteChara bool
	WriteCCv3  bool
}

// Embed returns a copy of p with text embedded as a character card.
// Existing chara and ccv3 tEXt chunks are dropped so at most one
// chunk per keyword survives; all other chunks are copied through
// byte for byte in their original order. The new chunks are placed
// immediately before IEND, chara first.
func Embed(p []byte, text string, opt *EmbedOptions) ([]byte, error) {
	if opt == nil {
		opt = &EmbedOptions{WriteChara: true, WriteCCv3: true}
	}

	payload := base64.StdEncoding.EncodeToString([]byte(text))

	var ins [][]byte
	if opt.WriteChara {
		ins = append(ins, textChunk(KeywordChara, payload))
	}
	if opt.WriteCCv3 {
		ins = append(ins, textChunk(KeywordCCv3, payload))
	}

	return rewrite(p, ins)
}

// Strip returns a copy of p with embedded character cards removed.
func Strip(p []byte) ([]byte, error) {
	return rewrite(p, nil)
}

// rewrite copies p chunk by chunk into a fresh buffer, dropping
// card-carrying tEXt chunks and splicing ins immediately before the
// IEND chunk. Chunk lengths change across a rewrite, so the output
// is always rebuilt rather than patched in place.
func rewrite(p []byte, ins [][]byte) ([]byte, error) {
	if !hasSignature(p) {
		return nil, ErrNotPNG
	}

	grow := 0
	for _, c := range ins {
		grow += len(c)
	}
	out := make([]byte, 0, len(p)+grow)
	out = append(out, p[:len(pngHeader)]...)

	r := newChunkReader(p)
	sawEnd := false
	for r.next() {
		if r.typ == chunkTEXt && isCardKeyword(textKeyword(r.data)) {
			continue
		}
		if r.typ == chunkIEND {
			for _, c := range ins {
				out = append(out, c...)
			}
			sawEnd = true
		}
		out = append(out, r.raw...)
	}
	if !sawEnd {
		// truncated stream: no defined insertion point
		return nil, ErrMissingIEND
	}
	return out, nil
}

// textChunk serializes a tEXt chunk holding text under keyword,
// with freshly computed length and CRC fields.
func textChunk(keyword, text string) []byte {
	data := make([]byte, 0, len(keyword)+1+len(text))
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, text...)

	c := make([]byte, 0, len(data)+chunkOverhead)
	c = binary.BigEndian.AppendUint32(c, uint32(len(data)))
	c = append(c, chunkTEXt...)
	c = append(c, data...)
	c = binary.BigEndian.AppendUint32(c, chunkCRC(chunkTEXt, data))
	return c
}
