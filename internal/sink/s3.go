package sink

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"dms-go/internal/config"
	"dms-go/internal/dms"
)

// Uploader is the part of manager.Uploader used by S3Sink.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Sink uploads downloads to an S3 bucket under a key prefix.
type S3Sink struct {
	bucket   string
	prefix   string
	uploader Uploader
}

var _ dms.Sink = (*S3Sink)(nil)

// NewS3Sink creates an S3Sink using the given uploader.
func NewS3Sink(bucket, prefix string, uploader Uploader) *S3Sink {
	return &S3Sink{bucket: bucket, prefix: prefix, uploader: uploader}
}

// NewS3SinkFromConfig loads AWS configuration and builds a multipart uploader.
// Static credentials are used when an access key is configured; otherwise
// the default AWS credential chain applies.
func NewS3SinkFromConfig(ctx context.Context, cfg config.DownloadsConfig) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Sink(cfg.S3Bucket, cfg.S3Prefix, manager.NewUploader(client)), nil
}

// Save uploads r to s3://bucket/prefix/name and returns that URI.
func (s *S3Sink) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := path.Join(s.prefix, safeName(name))
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("uploading s3://%s/%s: %w", s.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
