package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"

	"studio-site/pkg/logging"
)

const (
	bucketPrefix   = "projects/"
	signedURLTTL   = 24 * time.Hour
	signedURLVerb  = "GET"
	bucketListWait = 30 * time.Second
)

// BucketSource reads projects from objects named projects/<folder>/... in a
// Cloud Storage bucket. Photo URLs are signed for 24 hours.
type BucketSource struct {
	client *storage.Client
	bucket string
	log    zerolog.Logger
}

// NewBucketSource creates a BucketSource using application default credentials
func NewBucketSource(ctx context.Context, bucket string) (*BucketSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BucketSource{
		client: client,
		bucket: bucket,
		log:    logging.WithComponent("bucket"),
	}, nil
}

// Close releases the storage client
func (s *BucketSource) Close() error {
	return s.client.Close()
}

// Folders lists the top-level "directories" below projects/
func (s *BucketSource) Folders(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, bucketListWait)
	defer cancel()

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: bucketPrefix, Delimiter: "/"})
	var folders []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", s.bucket, err)
		}
		if attrs.Prefix == "" {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(attrs.Prefix, bucketPrefix), "/")
		if name == "" || strings.HasPrefix(name, ".") {
			continue
		}
		folders = append(folders, name)
	}
	return folders, nil
}

// Photos returns a signed URL for each photo object under the folder
func (s *BucketSource) Photos(ctx context.Context, folder string) ([]Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, bucketListWait)
	defer cancel()

	prefix := bucketPrefix + folder + "/"
	bucket := s.client.Bucket(s.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var photos []Photo
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", folder, err)
		}
		rel, ok := objectPhotoPath(prefix, attrs.Name)
		if !ok {
			continue
		}

		signedURL, err := bucket.SignedURL(attrs.Name, &storage.SignedURLOptions{
			Expires: time.Now().Add(signedURLTTL),
			Method:  signedURLVerb,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("object", attrs.Name).Msg("skipping photo, cannot sign URL")
			continue
		}
		photos = append(photos, Photo{Path: rel, URL: signedURL})
	}
	return photos, nil
}

// objectPhotoPath returns the object name relative to prefix when it is a
// photo with no hidden path segment.
func objectPhotoPath(prefix, name string) (string, bool) {
	rel, found := strings.CutPrefix(name, prefix)
	if !found || rel == "" || !IsPhoto(rel) {
		return "", false
	}
	for _, segment := range strings.Split(rel, "/") {
		if segment == "" || strings.HasPrefix(segment, ".") {
			return "", false
		}
	}
	return rel, true
}
