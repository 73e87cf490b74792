package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/site-sections-backend/errs"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type fakePutter struct {
	mu      sync.Mutex
	inputs  []*s3.PutObjectInput
	bodies  map[string][]byte
	failKey string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKey != "" && strings.Contains(aws.ToString(in.Key), f.failKey) {
		return nil, errors.New("access denied")
	}
	if f.bodies == nil {
		f.bodies = make(map[string][]byte)
	}
	f.inputs = append(f.inputs, in)
	f.bodies[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func newTestStore(t *testing.T, putter *fakePutter, baseURL string) *S3ImageStore {
	t.Helper()
	store, err := NewS3ImageStore(putter, "media", baseURL)
	require.NoError(t, err)
	store.newKey = func(name string) string { return "uploads/fixed-" + sanitizeFileName(name) }
	return store
}

func TestNewS3ImageStoreWithoutBucketIsDisabled(t *testing.T) {
	_, err := NewS3ImageStore(&fakePutter{}, "", "")
	assert.ErrorIs(t, err, errs.ErrUploadDisabled)
}

func TestPutImage(t *testing.T) {
	putter := &fakePutter{}

	url, err := newTestStore(t, putter, "https://cdn.example.com/").PutImage(context.Background(), "Team Photo.PNG", "image/png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/fixed-team_photo.png", url)

	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	assert.Equal(t, "media", aws.ToString(in.Bucket))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
	assert.Equal(t, int64(len(pngBytes)), aws.ToInt64(in.ContentLength))
	assert.Equal(t, pngBytes, putter.bodies["uploads/fixed-team_photo.png"])

	relative, err := newTestStore(t, putter, "").PutImage(context.Background(), "a.png", "image/png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "uploads/fixed-a.png", relative)
}

func TestValidate(t *testing.T) {
	u := NewUploader(nil, 64)

	contentType, err := u.Validate(UploadFile{Name: "a.png", Data: pngBytes})
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	contentType, err = u.Validate(UploadFile{Name: "a.gif", Data: []byte("GIF89a\x01\x00\x01\x00")})
	require.NoError(t, err)
	assert.Equal(t, "image/gif", contentType)

	_, err = u.Validate(UploadFile{Name: "x.png", Data: []byte("<html>not an image</html>")})
	assert.ErrorIs(t, err, errs.ErrUnsupportedMediaType, "the declared extension is not trusted")

	_, err = u.Validate(UploadFile{Name: "big.png", Data: append(pngBytes, make([]byte, 64)...)})
	assert.ErrorIs(t, err, errs.ErrMaxBodySizeExceeded)

	_, err = u.Validate(UploadFile{Name: "empty.png"})
	assert.ErrorIs(t, err, errs.ErrMissingRequiredField)
}

func TestUploaderDefaultsCapWhenNotPositive(t *testing.T) {
	for _, limit := range []int64{0, -1} {
		u := NewUploader(nil, limit)
		assert.Equal(t, DefaultMaxUploadBytes, u.MaxBytes())

		_, err := u.Validate(UploadFile{Name: "a.png", Data: pngBytes})
		assert.NoError(t, err)
	}
}

func TestUploadAllKeepsOrderAndIsolatesFailures(t *testing.T) {
	putter := &fakePutter{failKey: "broken"}
	u := NewUploader(newTestStore(t, putter, ""), 1024)

	results := u.UploadAll(context.Background(), []UploadFile{
		{Name: "one.png", Data: pngBytes},
		{Name: "notes.txt", Data: []byte("plain text")},
		{Name: "broken.png", Data: pngBytes},
		{Name: "two.png", Data: pngBytes},
	})

	require.Len(t, results, 4)
	assert.Equal(t, UploadResult{Success: true, URL: "uploads/fixed-one.png"}, results[0])
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "unsupported media type")
	assert.Equal(t, UploadResult{Error: "upload failed"}, results[2])
	assert.Equal(t, UploadResult{Success: true, URL: "uploads/fixed-two.png"}, results[3])
}

func TestUploadAllWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := NewUploader(newTestStore(t, &fakePutter{}, ""), 1024)
	results := u.UploadAll(ctx, []UploadFile{{Name: "one.png", Data: pngBytes}})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, context.Canceled.Error(), results[0].Error)
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":            "photo.jpg",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\Pic 1.png`: "pic_1.png",
		"héllo wörld.webp":     "h_llo_w_rld.webp",
		"...":                  "image",
		"":                     "image",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFileName(in), in)
	}
}
