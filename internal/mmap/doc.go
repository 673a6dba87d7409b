// Package mmap provides read-only memory-mapped file access.
//
// Level tables and similarity files are read in full exactly once, so the
// package only offers whole-file mappings with an access hint.
//
//	m, err := mmap.Open("category_with_infra1.csv")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On Unix the file is mapped with mmap(2). Other platforms read the file
// into memory; callers see the same API.
package mmap
