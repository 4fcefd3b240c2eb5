// Package s3 reads newline-delimited json objects out of an S3 bucket.
// Credentials come from the SDK's default chain (environment, shared
// config, instance role); nothing in this package handles key material.
package s3

import (
	"io"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/Marcoc51/sparkify"
	"github.com/Marcoc51/sparkify/json"
	"github.com/pkg/errors"
)

// ParseURL splits an s3://bucket/prefix URL into bucket and prefix.
func ParseURL(url string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(url, "s3://") {
		return "", "", errors.Errorf("not an s3 url: %q", url)
	}
	parts := strings.SplitN(strings.TrimPrefix(url, "s3://"), "/", 2)
	if parts[0] == "" {
		return "", "", errors.Errorf("no bucket in s3 url: %q", url)
	}
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}

// NewSource gets a source which yields the json records of every object
// under an S3 prefix.
func NewSource(region, bucket, prefix string) (sparkify.Source, error) {
	rs, err := NewRawSource(region, bucket, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "getting raw s3 source")
	}
	return json.NewSourceFromRawSource(rs), nil
}

// RawSource is a sparkify.RawSource which hands out one reader per object
// under an S3 prefix.
type RawSource struct {
	bucket string
	prefix string
	region string

	s3      *s3.S3
	sess    *session.Session
	objects []*s3.Object
	objIdx  *uint64
}

// NewRawSource connects to S3 and lists the objects under prefix. Readers
// are handed out in the listing's order.
func NewRawSource(region, bucket, prefix string) (*RawSource, error) {
	idx := uint64(0)
	rs := &RawSource{
		region: region,
		bucket: bucket,
		prefix: prefix,

		objIdx: &idx,
	}
	var err error
	rs.sess, err = session.NewSession(&aws.Config{
		Region: aws.String(rs.region)},
	)
	if err != nil {
		return nil, errors.Wrap(err, "getting new session")
	}
	rs.s3 = s3.New(rs.sess)
	resp, err := rs.s3.ListObjects(&s3.ListObjectsInput{Bucket: aws.String(rs.bucket), Prefix: aws.String(rs.prefix)})
	if err != nil {
		return nil, errors.Wrap(err, "listing objects")
	}
	rs.objects = resp.Contents

	return rs, nil
}

type objReader struct {
	name string
	body io.ReadCloser
}

func (o *objReader) Read(buf []byte) (n int, err error) {
	return o.body.Read(buf)
}

func (o *objReader) Close() error {
	return o.body.Close()
}

func (o *objReader) Name() string {
	return o.name
}

// NextReader fetches the next object and returns its body, and io.EOF once
// every listed object has been handed out.
func (rs *RawSource) NextReader() (sparkify.NamedReadCloser, error) {
	idx := atomic.AddUint64(rs.objIdx, 1) - 1
	if int(idx) >= len(rs.objects) {
		return nil, io.EOF
	}
	obj := rs.objects[idx]

	result, err := rs.s3.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(rs.bucket),
		Key:    aws.String(*obj.Key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", *obj.Key)
	}
	return &objReader{name: *obj.Key, body: result.Body}, nil
}
