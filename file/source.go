package file

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/Marcoc51/sparkify"
	"github.com/Marcoc51/sparkify/json"
	"github.com/pkg/errors"
)

// NewSource gets a source which yields the json records of a file, or of
// every .json file under a directory tree (the song catalog nests files
// several directories deep).
func NewSource(pathname string) (sparkify.Source, error) {
	rs, err := NewRawSource(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "getting raw source")
	}
	return json.NewSourceFromRawSource(rs), nil
}

// RawSource is a sparkify.RawSource which hands out one reader per file, in
// a stable sorted order.
type RawSource struct {
	files   []string
	fileIdx *uint64
}

// NewRawSource gets a RawSource over the named file, or over all .json files
// under the named directory.
func NewRawSource(pathname string) (*RawSource, error) {
	fileIdx := uint64(0)
	s := &RawSource{
		fileIdx: &fileIdx,
	}
	info, err := os.Stat(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "statting path")
	}
	if !info.IsDir() {
		s.files = []string{pathname}
		return s, nil
	}
	err = filepath.Walk(pathname, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		s.files = append(s.files, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking directory")
	}
	sort.Strings(s.files)
	return s, nil
}

type metaFile struct {
	*os.File
}

func (m *metaFile) Name() string {
	return filepath.Base(m.File.Name())
}

// NextReader returns a reader for the next file, and io.EOF once all files
// have been handed out.
func (s *RawSource) NextReader() (sparkify.NamedReadCloser, error) {
	idx := atomic.AddUint64(s.fileIdx, 1) - 1
	if int(idx) >= len(s.files) {
		return nil, io.EOF
	}

	f, err := os.Open(s.files[idx])
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", s.files[idx])
	}

	mf := metaFile{f}
	return &mf, nil
}
