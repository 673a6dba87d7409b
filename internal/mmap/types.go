package mmap

import "errors"

// AccessPattern tells the kernel how a Mapping will be read.
type AccessPattern int

// LocalStore reads each blob front to back once and asks for
// AccessSequential.
const (
	AccessDefault AccessPattern = iota
	AccessSequential
	AccessRandom
	AccessWillNeed
)

var (
	// ErrClosed is returned by reads after Close.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize means the file length does not fit in an int.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset means ReadAt got a negative offset.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
