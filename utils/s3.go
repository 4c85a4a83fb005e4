package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string // CloudFront origin serving the bucket
}

func NewS3Uploader(cfg aws.Config, region, bucket, publicURL string) *S3Uploader {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	})
	return &S3Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// UploadImage stores img under profile-pictures/ and returns its public URL.
func (u *S3Uploader) UploadImage(ctx context.Context, img *ImageData, filenamePrefix string) (string, error) {
	key := fmt.Sprintf("profile-pictures/%s-%d%s",
		filenamePrefix,
		time.Now().UnixNano(),
		img.Extension(),
	)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Bytes),
		ContentType: aws.String(img.MimeType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
