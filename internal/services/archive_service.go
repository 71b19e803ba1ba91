// internal/services/archive_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/utils"
)

var (
	ErrFileTooLarge    = errors.New("file is too large")
	ErrFileTypeInvalid = errors.New("file type is not allowed")
)

// ArchiveService keeps a copy of every uploaded price list, in S3 when credentials are
// configured and on local disk otherwise.
type ArchiveService struct {
	s3Client *s3.S3
	config   *config.Config
}

type ArchiveResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}

func NewArchiveService(config *config.Config) (*ArchiveService, error) {
	if config.AWS.AccessKeyID == "" {
		// Local disk archive for development
		return &ArchiveService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ArchiveService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

func (s *ArchiveService) maxSize() int64 {
	return int64(s.config.Upload.MaxSizeMB) * 1024 * 1024
}

// Validate checks an upload before it is read into memory.
func (s *ArchiveService) Validate(filename string, size int64) error {
	if limit := s.maxSize(); limit > 0 && size > limit {
		return fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, size, limit)
	}
	if err := utils.ValidateVar(filename, "required,pricelist_file"); err != nil {
		return fmt.Errorf("%w: %s", ErrFileTypeInvalid, filepath.Ext(filename))
	}
	return nil
}

// Store archives a price list under a unique key.
func (s *ArchiveService) Store(ctx context.Context, source models.Source, filename string, data []byte) (*ArchiveResult, error) {
	key := s.generateKey(filename, string(source))

	if s.s3Client != nil {
		return s.storeToS3(ctx, key, data)
	}
	return s.storeToLocal(key, data)
}

func (s *ArchiveService) storeToS3(ctx context.Context, key string, data []byte) (*ArchiveResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType(key)),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata:      map[string]*string{"sha256": aws.String(utils.Checksum(data))},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &ArchiveResult{
		Key:      key,
		Location: fmt.Sprintf("s3://%s/%s", s.config.AWS.S3Bucket, key),
		Size:     int64(len(data)),
		Checksum: utils.Checksum(data),
	}, nil
}

func (s *ArchiveService) storeToLocal(key string, data []byte) (*ArchiveResult, error) {
	path := filepath.Join(s.config.Upload.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write archive file: %w", err)
	}

	return &ArchiveResult{Key: key, Location: path, Size: int64(len(data)), Checksum: utils.Checksum(data)}, nil
}

func (s *ArchiveService) Delete(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.config.Upload.Dir, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete archive file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// PresignedURL returns a temporary download link for an archived price list.
func (s *ArchiveService) PresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	logrus.WithField("key", key).Debug("Generated presigned archive URL")
	return url, nil
}

func (s *ArchiveService) generateKey(originalName, source string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("pricelists/%s/%s_%s%s", source, timestamp, id.String()[:8], ext)
}

func contentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".xlsx", ".xlsm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
