package resource

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/els/internal/errors"
)

type fakeObjects struct {
	objects map[string]string
	gets    int
}

func (f *fakeObjects) key(bucket, key *string) string {
	return aws.ToString(bucket) + "/" + aws.ToString(key)
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gets++
	body, ok := f.objects[f.key(in.Bucket, in.Key)]
	if !ok {
		return nil, stderrors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func (f *fakeObjects) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[f.key(in.Bucket, in.Key)]; !ok {
		return nil, stderrors.New("NotFound")
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3SourceKey(t *testing.T) {
	src := NewS3Source(&fakeObjects{}, "b", "site/")
	tests := map[string]string{
		"templates/x-y.html":       "site/templates/x-y.html",
		"/templates/x-y.html":      "site/templates/x-y.html",
		"templates/../css/x-y.css": "site/css/x-y.css",
		`js\x-y.js`:                "site/js/x-y.js",
	}
	for in, want := range tests {
		if got := src.Key(in); got != want {
			t.Errorf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestS3SourceThroughCache(t *testing.T) {
	fake := &fakeObjects{objects: map[string]string{
		"components/site/templates/my-card.html": "<p data-bind=\"title\"></p>",
	}}
	src := NewS3Source(fake, "components", "site/")
	cache := NewCache(src)

	if !cache.Exists("templates/my-card.html") {
		t.Fatal("Exists = false for stored object")
	}
	if cache.Exists("templates/other.html") {
		t.Fatal("Exists = true for missing object")
	}

	for i := 0; i < 2; i++ {
		got, err := cache.Load("templates/my-card.html")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != `<p data-bind="title"></p>` {
			t.Errorf("Load = %q", got)
		}
	}
	if fake.gets != 1 {
		t.Errorf("GetObject called %d times, want 1", fake.gets)
	}

	_, err := cache.Load("templates/other.html")
	if !stderrors.Is(err, errors.New("E001")) {
		t.Errorf("missing object should yield E001, got %v", err)
	}
}
