package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kowapp/internal/common/logger"
)

// ImageStore keeps tutor profile pictures in an S3-compatible bucket. Reads
// go through short-lived presigned URLs so the bucket stays private.
type ImageStore struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

func NewImageStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, urlTTL time.Duration) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("storage_init", fmt.Sprintf("bucket %s created", bucket), "", "")
	}

	logger.Info("storage_init", "object storage connected", "", "")
	return &ImageStore{client: client, bucket: bucket, urlTTL: urlTTL}, nil
}

// UploadProfileImage stores the image under a per-tutor key. Re-uploading
// overwrites the previous picture.
func (s *ImageStore) UploadProfileImage(ctx context.Context, tutorID int, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("profile-images/%d%s", tutorID, path.Ext(filename))

	if _, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload profile image: %w", err)
	}

	logger.Info("upload_profile_image", fmt.Sprintf("stored %s", objectName), "", fmt.Sprint(tutorID))
	return objectName, nil
}

// SignedURL returns a time-limited GET URL for a stored object.
func (s *ImageStore) SignedURL(ctx context.Context, objectName string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.urlTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object url: %w", err)
	}
	return u.String(), nil
}
