package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/config"
)

// MinIOClient archives meeting transcripts and analyses as JSON objects
type MinIOClient struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
		logger: logger,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// UploadJSON marshals v and uploads it as application/json
func (m *MinIOClient) UploadJSON(ctx context.Context, objectName string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", objectName, err)
	}
	return m.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), "application/json")
}

// ArchiveMeeting stores the provider transcript and the analysis under meetings/<id>/
func (m *MinIOClient) ArchiveMeeting(ctx context.Context, meetingID string, transcript interface{}, analysis *entities.AnalysisResult) error {
	prefix := MeetingPrefix(meetingID)
	if transcript != nil {
		if err := m.UploadJSON(ctx, path.Join(prefix, "transcript.json"), transcript); err != nil {
			return err
		}
	}
	if analysis != nil {
		if err := m.UploadJSON(ctx, path.Join(prefix, "analysis.json"), analysis); err != nil {
			return err
		}
	}
	if m.logger != nil {
		m.logger.Info("🗄️ Meeting archived",
			zap.String("meeting_id", meetingID),
			zap.String("bucket", m.bucket),
		)
	}
	return nil
}

// GetFileURL returns a presigned URL for an archived object
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// ListFiles lists all files in the bucket under prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}
	return files, nil
}

// ArchiveURLs returns presigned URLs for every archived object of a meeting
func (m *MinIOClient) ArchiveURLs(ctx context.Context, meetingID string, expiry time.Duration) (map[string]string, error) {
	files, err := m.ListFiles(ctx, MeetingPrefix(meetingID)+"/")
	if err != nil {
		return nil, err
	}
	urls := make(map[string]string, len(files))
	for _, f := range files {
		u, err := m.GetFileURL(ctx, f, expiry)
		if err != nil {
			return nil, err
		}
		urls[path.Base(f)] = u
	}
	return urls, nil
}

// GetBucketInfo returns information about the bucket and connection
func (m *MinIOClient) GetBucketInfo(ctx context.Context) (map[string]interface{}, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	return map[string]interface{}{
		"bucket":        m.bucket,
		"bucket_exists": exists,
		"endpoint":      m.client.EndpointURL().String(),
	}, nil
}

// MeetingPrefix is the object prefix for a meeting's archive
func MeetingPrefix(meetingID string) string {
	return path.Join("meetings", meetingID)
}
