// Package testutil builds in-memory PNG fixtures for tests.
package testutil

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
)

// Signature is the 8-byte PNG file signature.
var Signature = []byte("\x89PNG\r\n\x1a\n")

// Chunk serializes a chunk with correct length and CRC fields.
func Chunk(typ string, data []byte) []byte {
	c := make([]byte, 0, len(data)+12)
	c = binary.BigEndian.AppendUint32(c, uint32(len(data)))
	c = append(c, typ...)
	c = append(c, data...)

	crc := crc32.ChecksumIEEE([]byte(typ))
	crc = crc32.Update(crc, crc32.IEEETable, data)
	return binary.BigEndian.AppendUint32(c, crc)
}

// TextChunk serializes a tEXt chunk holding text under keyword.
func TextChunk(keyword, text string) []byte {
	data := make([]byte, 0, len(keyword)+1+len(text))
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, text...)
	return Chunk("tEXt", data)
}

// TinyPNG returns a minimal valid 1×1 grayscale PNG:
// signature, IHDR, IDAT, IEND.
func TinyPNG() []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 1) // width
	binary.BigEndian.PutUint32(ihdr[4:], 1) // height
	ihdr[8] = 8                             // bit depth
	// color type, compression, filter and interlace left zero

	// one scanline: filter byte plus a single gray pixel
	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	zw.Write([]byte{0, 0})
	zw.Close()

	p := append([]byte(nil), Signature...)
	p = append(p, Chunk("IHDR", ihdr)...)
	p = append(p, Chunk("IDAT", idat.Bytes())...)
	p = append(p, Chunk("IEND", nil)...)
	return p
}
