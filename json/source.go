package json

import (
	"encoding/json"
	"io"

	"github.com/Marcoc51/sparkify"
	"github.com/pkg/errors"
)

// Source is a sparkify.Source for newline-delimited json data.
type Source struct {
	dec *json.Decoder
}

// NewSource gets a new json source which will decode from the given reader.
func NewSource(r io.Reader) *Source {
	return &Source{
		dec: json.NewDecoder(r),
	}
}

// Record returns the next json object that can be decoded from the reader.
func (s *Source) Record() (map[string]interface{}, error) {
	var res map[string]interface{}
	err := s.dec.Decode(&res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

type rawSourceSource struct {
	rs sparkify.RawSource

	cur sparkify.NamedReadCloser
	s   *Source
}

// NewSourceFromRawSource chains each reader handed out by rs into a single
// stream of decoded records.
func NewSourceFromRawSource(rs sparkify.RawSource) sparkify.Source {
	return &rawSourceSource{rs: rs}
}

func (r *rawSourceSource) Record() (rec map[string]interface{}, err error) {
	if r.s == nil {
		reader, err := r.rs.NextReader()
		if err == io.EOF {
			return nil, err
		} else if err != nil {
			return nil, errors.Wrap(err, "getting next reader")
		}
		r.cur = reader
		r.s = NewSource(reader)
	}
	rec, err = r.s.Record()
	if err == io.EOF {
		r.cur.Close()
		r.cur = nil
		r.s = nil
		return r.Record()
	} else if err != nil {
		return nil, errors.Wrapf(err, "decoding json from %s", r.cur.Name())
	}
	return rec, nil
}
