package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"directory-backend/internal/config"
	"directory-backend/internal/shared/utils"
)

// MinIOStorage resolves avatar object keys into presigned download URLs.
// The directory never writes to the bucket.
type MinIOStorage struct {
	client        *minio.Client
	bucket        string
	presignExpiry time.Duration
}

// NewMinIOStorage khởi tạo MinIO client và kiểm tra bucket avatar
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	s, err := newMinIOStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Bucket phải tồn tại sẵn, directory chỉ đọc
	exists, err := s.client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("avatar bucket %q does not exist", cfg.Bucket)
	}

	return s, nil
}

// newMinIOStorage builds the client without touching the network. Region is
// set explicitly so presigning never needs a bucket-location lookup.
func newMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL, // false cho local, true cho production
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &MinIOStorage{
		client:        client,
		bucket:        cfg.Bucket,
		presignExpiry: expiry,
	}, nil
}

// ResolveAvatar presigns object keys (vd: avatars/alice.png) and passes URLs
// through. A key that cannot be presigned resolves to "" so the UI shows
// the placeholder.
func (s *MinIOStorage) ResolveAvatar(ctx context.Context, ref string) string {
	if !utils.IsObjectKey(ref) {
		return ref
	}

	key := strings.TrimPrefix(ref, "/")
	// Refs stored as "<bucket>/<key>" are accepted too
	key = strings.TrimPrefix(key, s.bucket+"/")

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.presignExpiry, nil)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[STORAGE] Failed to presign avatar")
		return ""
	}
	return u.String()
}

// Ping checks the bucket is reachable, for the health endpoint
func (s *MinIOStorage) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := s.client.BucketExists(pingCtx, s.bucket); err != nil {
		return fmt.Errorf("minio ping failed: %w", err)
	}
	return nil
}
