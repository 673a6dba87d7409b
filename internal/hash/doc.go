// Package hash provides the CRC32-Castagnoli checksum used by the similarity
// file format and by S3 uploads.
//
//	checksum := hash.CRC32C(data)
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension when available.
package hash
