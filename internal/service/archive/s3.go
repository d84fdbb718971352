package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/pkg/logger"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Snapshot is the archived form of a tenant row.
type Snapshot struct {
	Tenant     *domain.Tenant  `json:"tenant"`
	Settings   json.RawMessage `json:"settings,omitempty"`
	ArchivedAt time.Time       `json:"archived_at"`
}

// S3Archiver writes a JSON snapshot of a tenant to S3 before it is purged.
type S3Archiver struct {
	client    S3API
	bucket    string
	keyPrefix string
	logger    *logger.Logger
	now       func() time.Time
}

func NewS3Archiver(client S3API, cfg *config.S3Config, logger *logger.Logger) *S3Archiver {
	return &S3Archiver{
		client:    client,
		bucket:    cfg.BucketName,
		keyPrefix: cfg.KeyPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

// Key returns the object key for a snapshot taken at archivedAt.
func (a *S3Archiver) Key(tenantID string, archivedAt time.Time) string {
	return path.Join(a.keyPrefix, tenantID, archivedAt.UTC().Format(time.RFC3339)+".json")
}

// Archive uploads the snapshot and returns its object key.
func (a *S3Archiver) Archive(ctx context.Context, tenant *domain.Tenant) (string, error) {
	archivedAt := a.now()
	snapshot := Snapshot{Tenant: tenant, ArchivedAt: archivedAt.UTC()}
	if tenant.Settings != nil && json.Valid([]byte(*tenant.Settings)) {
		snapshot.Settings = json.RawMessage(*tenant.Settings)
	}

	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal tenant snapshot: %w", err)
	}

	key := a.Key(tenant.ID, archivedAt)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jsonData),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"tenant-id":   tenant.ID,
			"subdomain":   tenant.Subdomain,
			"archived-at": archivedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload tenant snapshot to S3: %w", err)
	}

	a.logger.Infof("Archived tenant %s to s3://%s/%s", tenant.ID, a.bucket, key)
	return key, nil
}
