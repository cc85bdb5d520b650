// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/swellapp/swell-backend/internal/config"
	"github.com/swellapp/swell-backend/internal/models"
)

// StorageService persists uploaded media. Files land in the local files
// directory (served by the /files route); when AWS credentials are configured
// a copy is also pushed to S3 so deployments can front media with CloudFront.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type SavedFile struct {
	Path string
	Name string
	Size int64
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if err := os.MkdirAll(cfg.Storage.FilesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create files directory: %w", err)
	}

	if cfg.AWS.AccessKeyID == "" {
		// Local-only mode
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// SaveUpload streams the multipart file to disk under a random unique name.
// The extension follows the media type, matching the original file layout.
func (s *StorageService) SaveUpload(header *multipart.FileHeader, mediaType models.MediaType) (*SavedFile, error) {
	if header == nil {
		return nil, fmt.Errorf("missing file part")
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + extensionFor(mediaType)
	path := filepath.Join(s.config.Storage.FilesDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if s.s3Client != nil {
		if err := s.uploadToS3(path, name); err != nil {
			logrus.WithError(err).WithField("key", name).Warn("S3 upload failed, file kept locally")
		}
	}

	return &SavedFile{Path: path, Name: name, Size: size}, nil
}

// Remove deletes a stored file; used to clean up orphans when the database
// insert after an upload fails.
func (s *StorageService) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", path).Warn("Failed to remove file")
	}

	if s.s3Client != nil {
		key := filepath.Base(path)
		_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.config.AWS.S3Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to remove S3 object")
		}
	}
}

// ThumbnailPathFor derives the thumbnail location for a stored video.
func (s *StorageService) ThumbnailPathFor(videoPath string) string {
	base := filepath.Base(videoPath)
	ext := filepath.Ext(base)
	return filepath.Join(s.config.Storage.FilesDir, base[:len(base)-len(ext)]+"_thumb.jpg")
}

func (s *StorageService) URLFor(name string) string {
	if s.s3Client != nil && s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, name)
	}
	return "/files/" + name
}

func (s *StorageService) uploadToS3(path, key string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file for S3 upload: %w", err)
	}

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func extensionFor(mediaType models.MediaType) string {
	if mediaType == models.MediaTypeVideo {
		return ".mp4"
	}
	return ".jpg"
}
