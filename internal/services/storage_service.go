package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// StorageService uploads contest thumbnails to S3-compatible storage and
// returns the public url stored on the contest row.
type StorageService struct {
	Client   *s3.S3
	Bucket   string
	BaseUrl  string
	Uploader func(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func NewStorageService() (*StorageService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(os.Getenv("S3_REGION")),
		Endpoint:         aws.String(os.Getenv("S3_ENDPOINT")),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("S3_ACCESS_KEY"),
			os.Getenv("S3_SECRET_KEY"),
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}

	client := s3.New(sess)
	svc := &StorageService{
		Client:  client,
		Bucket:  os.Getenv("S3_BUCKET"),
		BaseUrl: strings.TrimSuffix(os.Getenv("S3_PUBLIC_URL"), "/"),
	}
	svc.Uploader = client.PutObject
	return svc, nil
}

// UploadThumbnail stores an image under thumbnails/ and returns its public url.
func (s *StorageService) UploadThumbnail(filename, contentType string, data []byte) (string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("thumbnails/%s%s", uuid.NewString(), ext)

	_, err := s.Uploader(&s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("thumbnail upload failed: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.BaseUrl, key), nil
}
