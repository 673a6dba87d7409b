package sparse

import "errors"

var (
	// ErrIndexOutOfRange is returned when an entry addresses a row or column >= n.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOverflow is returned when an accumulated count would exceed uint32.
	ErrOverflow = errors.New("count overflow")

	// ErrDimensionMismatch is returned when two structures of different size are combined.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrCorrupt is returned when decoding a malformed or truncated matrix.
	ErrCorrupt = errors.New("corrupt matrix data")

	// ErrChecksumMismatch is returned when the decoded payload fails CRC validation.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)
