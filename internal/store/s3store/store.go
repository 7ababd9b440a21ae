package s3store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
)

type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// New builds an S3 client from the default AWS config chain. baseURL is the public
// prefix of uploaded objects; empty means the virtual-hosted bucket URL.
func New(ctx context.Context, bucket, baseURL string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
		UsePathStyle: cfg.BaseEndpoint != nil,
	})
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}
	return &Store{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload stores body under attachments/<ulid>/<filename> and returns its URL.
func (s *Store) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	id, err := common.NewULID()
	if err != nil {
		return "", err
	}
	key := ObjectKey(id, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		ACL:           types.ObjectCannedACLPrivate,
	}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.baseURL + "/" + (&url.URL{Path: key}).EscapedPath(), nil
}

// ObjectKey keeps only the base name of the client filename.
func ObjectKey(id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return "attachments/" + id + "/" + name
}
