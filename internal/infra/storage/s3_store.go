package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrBucketNotConfigured = errors.New("S3_BUCKET_NAME is not configured")

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore はゲーム画像をS3に置く。
// 公開読み取りはバケットポリシー任せ（ACLは付けない）。
type S3ImageStore struct {
	client s3API
	bucket string
	region string
}

func NewS3ImageStore(cfg aws.Config, bucket string, region string) *S3ImageStore {
	return &S3ImageStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (s *S3ImageStore) UploadGameImage(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	if s.bucket == "" {
		return "", ErrBucketNotConfigured
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := "game-images/" + filename

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return url, nil
}
