package sparkify

import "io"

// Source is the interface for getting raw records one at a time.
// Implementations of Source should be thread safe, and must return io.EOF
// once the underlying data is exhausted.
type Source interface {
	Record() (map[string]interface{}, error)
}

// NamedReadCloser is a reader which knows the name of the thing being read.
type NamedReadCloser interface {
	io.ReadCloser
	Name() string
}

// RawSource hands out one reader per underlying object (a file on disk, an
// object in a bucket), returning io.EOF once every object has been handed
// out. Implementations should be safe for concurrent use.
type RawSource interface {
	NextReader() (NamedReadCloser, error)
}
