package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Uploader is the part of s3manager.Uploader the publisher needs.
type Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Publisher uploads rendered summaries to a bucket.
type S3Publisher struct {
	uploader Uploader
	bucket   string
	prefix   string
}

// NewS3Publisher creates a publisher using the default AWS credential chain.
func NewS3Publisher(region, bucket, prefix string) (*S3Publisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket must not be empty")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return NewS3PublisherWithUploader(s3manager.NewUploader(sess), bucket, prefix), nil
}

// NewS3PublisherWithUploader is NewS3Publisher with an explicit uploader.
func NewS3PublisherWithUploader(uploader Uploader, bucket, prefix string) *S3Publisher {
	return &S3Publisher{uploader: uploader, bucket: bucket, prefix: prefix}
}

// Publish uploads body under prefix/name and returns the object URL.
func (p *S3Publisher) Publish(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	key := path.Join(p.prefix, name)
	out, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return out.Location, nil
}
