package persistent

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/baiqizhang/CopyCat-Server/pkg/s3client"
)

type ObjectRepo struct {
	*s3client.S3Client
	bucket        string
	publicBaseURL string
}

// NewObjectRepo builds public URLs from publicBaseURL when set, otherwise
// from the virtual-hosted AWS form for the client's region.
func NewObjectRepo(s3c *s3client.S3Client, bucket, publicBaseURL string) *ObjectRepo {
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, s3c.Region())
	}

	return &ObjectRepo{
		S3Client:      s3c,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (r *ObjectRepo) UploadPublic(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ACL:           types.ObjectCannedACLPublicRead,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("ObjectRepo - UploadPublic - r.Client.PutObject: %w", err)
	}

	return PublicURL(r.publicBaseURL, key), nil
}

func PublicURL(base, key string) string {
	return base + "/" + url.PathEscape(key)
}
