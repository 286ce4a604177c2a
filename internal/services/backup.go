package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// BackupFilename names an export after the day it was taken.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("biography_backup_%s.json", now.Format("2006-01-02"))
}

// ExportJSON serializes the full document for download.
func ExportJSON(doc *models.ProfileDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ObjectPutter is the slice of an S3 client the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucket, object string, data []byte, contentType string) error
}

// BackupArchiver keeps a server-side copy of every export under
// backups/<userId>/<filename>.
type BackupArchiver struct {
	objects ObjectPutter
	bucket  string
}

func NewBackupArchiver(objects ObjectPutter, bucket string) *BackupArchiver {
	return &BackupArchiver{objects: objects, bucket: bucket}
}

func BackupObjectName(userID, filename string) string {
	return path.Join("backups", userID, filename)
}

// Archive stores data. A nil archiver is a no-op so callers need not check
// whether object storage is configured.
func (a *BackupArchiver) Archive(ctx context.Context, userID, filename string, data []byte) error {
	if a == nil {
		return nil
	}
	name := BackupObjectName(userID, filename)
	if err := a.objects.PutObject(ctx, a.bucket, name, data, "application/json"); err != nil {
		return fmt.Errorf("archive backup %s: %w", name, err)
	}
	return nil
}

// MinioObjects adapts a minio client to ObjectPutter.
type MinioObjects struct {
	client *minio.Client
}

// NewMinioObjects connects to an S3-compatible endpoint and makes sure the
// bucket exists.
func NewMinioObjects(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioObjects, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		log.Info().Str("bucket", bucket).Msg("created backup bucket")
	}
	return &MinioObjects{client: client}, nil
}

func (m *MinioObjects) PutObject(ctx context.Context, bucket, object string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}
