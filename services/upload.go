package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/site-sections-backend/config"
	"github.com/rpupo63/site-sections-backend/errs"
)

// uploadPrefix is the folder every stored image lives under. Editors keep the
// returned relative path, so it must match what the asset normalizer emits.
const uploadPrefix = "uploads"

const maxConcurrentUploads = 4

// DefaultMaxUploadBytes caps a single image when no positive cap is configured.
const DefaultMaxUploadBytes int64 = 5 << 20

var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// UploadResult is the per-file answer of the upload endpoint.
type UploadResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadFile is one file of a multipart request, already read into memory.
type UploadFile struct {
	Name string
	Data []byte
}

// ImageStore persists image bytes and returns the path or URL to store in content.
type ImageStore interface {
	PutImage(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// ObjectPutter is the slice of the S3 client used to store uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3ImageStore struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	newKey        func(name string) string
}

func NewS3ImageStore(client ObjectPutter, bucket, publicBaseURL string) (*S3ImageStore, error) {
	if bucket == "" {
		return nil, errs.NewUploadDisabledError()
	}
	return &S3ImageStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		newKey: func(name string) string {
			return path.Join(uploadPrefix, uuid.NewString()+"-"+sanitizeFileName(name))
		},
	}, nil
}

// NewS3ImageStoreFromSettings loads the default AWS credentials chain. Without
// an UPLOAD_BUCKET it returns ErrUploadDisabled.
func NewS3ImageStoreFromSettings(ctx context.Context, settings config.Settings) (*S3ImageStore, error) {
	if settings.UploadBucket == "" {
		return nil, errs.NewUploadDisabledError()
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewS3ImageStore(s3.NewFromConfig(awsCfg), settings.UploadBucket, settings.UploadPublicBaseURL)
}

// PutImage stores data under uploads/<uuid>-<name>. The result is an absolute
// URL when a public base is configured and the relative key otherwise.
func (s *S3ImageStore) PutImage(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := s.newKey(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	if s.publicBaseURL == "" {
		return key, nil
	}
	return s.publicBaseURL + "/" + key, nil
}

// Uploader validates files and hands them to an ImageStore.
type Uploader struct {
	store    ImageStore
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploader caps every file at maxBytes, or DefaultMaxUploadBytes when
// maxBytes is not positive.
func NewUploader(store ImageStore, maxBytes int64) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Uploader{
		store:    store,
		maxBytes: maxBytes,
		logger:   log.With().Str("service", "uploader").Logger(),
	}
}

func (u *Uploader) MaxBytes() int64 {
	return u.maxBytes
}

// Validate checks the size and the sniffed content type of a file and returns
// the content type to store it with.
func (u *Uploader) Validate(f UploadFile) (string, error) {
	if len(f.Data) == 0 {
		return "", errs.NewMissingRequiredFieldError("file")
	}
	if int64(len(f.Data)) > u.maxBytes {
		return "", errs.NewMaxBodySizeExceededError(u.maxBytes)
	}

	contentType := http.DetectContentType(f.Data)
	if !slices.Contains(AllowedImageTypes, contentType) {
		return "", errs.NewUnsupportedMediaTypeError(contentType, AllowedImageTypes)
	}
	return contentType, nil
}

// Upload stores a single file. Failures are reported in the result.
func (u *Uploader) Upload(ctx context.Context, f UploadFile) UploadResult {
	contentType, err := u.Validate(f)
	if err != nil {
		return UploadResult{Error: err.Error()}
	}

	url, err := u.store.PutImage(ctx, f.Name, contentType, f.Data)
	if err != nil {
		u.logger.Error().Err(err).Str("file", f.Name).Msg("storing upload failed")
		return UploadResult{Error: "upload failed"}
	}
	return UploadResult{Success: true, URL: url}
}

// UploadAll stores files concurrently. Results keep the order of files and one
// failing file does not stop the others.
func (u *Uploader) UploadAll(ctx context.Context, files []UploadFile) []UploadResult {
	results := make([]UploadResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = UploadResult{Error: err.Error()}
				return nil
			}
			results[i] = u.Upload(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// sanitizeFileName keeps the base name of an uploaded file safe to use in an
// object key.
func sanitizeFileName(name string) string {
	base := strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if base == "" || base == "." || base == "/" {
		return "image"
	}

	var b strings.Builder
	for _, ch := range base {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '.' || ch == '_' || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "image"
	}
	return strings.ToLower(out)
}
