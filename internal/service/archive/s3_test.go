package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/pkg/logger"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func newArchiver(client S3API) *S3Archiver {
	a := NewS3Archiver(client, &config.S3Config{BucketName: "tenant-archives", KeyPrefix: "tenants"}, logger.NewNopLogger())
	a.now = func() time.Time { return time.Date(2025, 7, 17, 2, 0, 0, 0, time.UTC) }
	return a
}

func TestArchive_UploadsSnapshot(t *testing.T) {
	client := new(mockS3)
	archiver := newArchiver(client)
	stored := `{"branding":{"primaryColor":"#ff0000"}}`
	tenant := &domain.Tenant{ID: "t1", Subdomain: "acme", Status: domain.TenantStatusSoftDeleted, Settings: &stored}

	var body []byte
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "tenant-archives" &&
			aws.ToString(in.Key) == "tenants/t1/2025-07-17T02:00:00Z.json"
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		var err error
		body, err = io.ReadAll(in.Body)
		require.NoError(t, err)
	}).Return(&s3.PutObjectOutput{}, nil)

	key, err := archiver.Archive(context.Background(), tenant)

	require.NoError(t, err)
	assert.Equal(t, "tenants/t1/2025-07-17T02:00:00Z.json", key)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(body, &snapshot))
	assert.Equal(t, "t1", snapshot["tenant"].(map[string]any)["id"])
	assert.Equal(t, map[string]any{"branding": map[string]any{"primaryColor": "#ff0000"}}, snapshot["settings"])
	client.AssertExpectations(t)
}

func TestArchive_UploadError(t *testing.T) {
	client := new(mockS3)
	archiver := newArchiver(client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	key, err := archiver.Archive(context.Background(), &domain.Tenant{ID: "t1"})

	assert.Error(t, err)
	assert.Empty(t, key)
}
