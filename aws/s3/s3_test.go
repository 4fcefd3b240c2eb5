package s3

import "testing"

func TestParseURL(t *testing.T) {
	tests := []struct {
		url     string
		bucket  string
		prefix  string
		wantErr bool
	}{
		{url: "s3://udacity-dend/song_data", bucket: "udacity-dend", prefix: "song_data"},
		{url: "s3://udacity-dend", bucket: "udacity-dend", prefix: ""},
		{url: "s3://udacity-dend/a/b/c", bucket: "udacity-dend", prefix: "a/b/c"},
		{url: "http://example.com/x", wantErr: true},
		{url: "s3://", wantErr: true},
	}
	for _, test := range tests {
		bucket, prefix, err := ParseURL(test.url)
		if test.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", test.url)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", test.url, err)
		}
		if bucket != test.bucket || prefix != test.prefix {
			t.Fatalf("%s: got (%q, %q)", test.url, bucket, prefix)
		}
	}
}
