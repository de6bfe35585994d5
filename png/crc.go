package png

import "hash/crc32"

// chunkCRC computes the checksum of a chunk over its type tag and
// payload, as stored in the last four bytes of the chunk.
func chunkCRC(typ string, data []byte) uint32 {
	crc := crc32.ChecksumIEEE([]byte(typ))
	return crc32.Update(crc, crc32.IEEETable, data)
}
