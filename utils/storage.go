// utils/storage.go
package utils

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// StorageService uploads files (product images) to S3 and hands back their
// public URLs.
type StorageService struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewStorageService builds an S3-backed StorageService from the default AWS
// credential chain and the AWS_BUCKET environment variable.
func NewStorageService(ctx context.Context) (*StorageService, error) {
	bucket := os.Getenv("AWS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET is not set in environment variables")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &StorageService{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   cfg.Region,
	}, nil
}

// Upload stores body under key with public-read ACL and returns the object's
// public URL.
func (ss *StorageService) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := ss.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", ss.bucket, ss.region, key), nil
}
