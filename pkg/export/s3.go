package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client the sink needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads exports to a bucket under a key prefix
type S3Sink struct {
	Client   ObjectPutter
	Bucket   string
	Prefix   string
	Compress bool
}

// NewS3Sink creates a sink using the default AWS credential chain
func NewS3Sink(ctx context.Context, bucket, prefix string, compress bool) (*S3Sink, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &S3Sink{
		Client:   s3.NewFromConfig(cfg),
		Bucket:   bucket,
		Prefix:   prefix,
		Compress: compress,
	}, nil
}

// Name implements Sink
func (s *S3Sink) Name() string {
	return "s3"
}

// Write implements Sink
func (s *S3Sink) Write(ctx context.Context, name string, data []byte) (string, error) {
	body, ext := encode(data, s.Compress)
	key := path.Join(s.Prefix, name+ext)

	contentType := "application/json"
	if s.Compress {
		contentType = "application/x-snappy"
	}

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return "s3://" + s.Bucket + "/" + key, nil
}
