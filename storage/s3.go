package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps media files in an S3 bucket under the same dir/name layout as
// LocalStore. baseURL is the public prefix the bucket is served from (a CDN
// or the bucket website endpoint).
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, bucket, baseURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *S3Store) Save(dir, filename string, r io.Reader) (string, error) {
	key := path.Join(dir, uniqueName(filename))
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to s3: %w", key, err)
	}
	return key, nil
}

func (s *S3Store) Delete(relPath string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(relPath),
	})
	if err != nil {
		return fmt.Errorf("deleting %s from s3: %w", relPath, err)
	}
	return nil
}

func (s *S3Store) URL(relPath string) string {
	return s.baseURL + "/" + strings.TrimLeft(relPath, "/")
}
