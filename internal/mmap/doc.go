// Package mmap provides read-only memory-mapped file access.
//
// The local dataset store maps CSV files instead of reading them into a
// buffer, so large inputs are paged in by the kernel as the parser walks
// them.
//
//	m, err := mmap.Open("patients.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	r := bytes.NewReader(m.Bytes())
//
// Unix systems use mmap(2) and madvise(2). On Windows the file is mapped
// with CreateFileMapping/MapViewOfFile and Advise is a no-op.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch slices returned by Bytes after Close returns.
package mmap
