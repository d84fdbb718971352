package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
)

type mockSQS struct {
	mock.Mock
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sqs.SendMessageOutput)
	return out, args.Error(1)
}

func TestNotifyTenantPurged(t *testing.T) {
	client := new(mockSQS)
	svc := NewSQSService(client, &config.SQSConfig{PurgeQueueURL: "http://localhost:4566/000000000000/tenant-purge-queue"})
	svc.now = func() time.Time { return time.Date(2025, 7, 17, 2, 0, 0, 0, time.UTC) }

	var sent Message
	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
		return aws.ToString(in.QueueUrl) == "http://localhost:4566/000000000000/tenant-purge-queue"
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*sqs.SendMessageInput)
		require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &sent))
	}).Return(&sqs.SendMessageOutput{}, nil)

	err := svc.NotifyTenantPurged(context.Background(), &domain.Tenant{ID: "t1", Subdomain: "acme"})

	require.NoError(t, err)
	assert.Equal(t, MessageTypeTenantPurged, sent.Type)
	assert.Equal(t, "t1", sent.TenantID)
	assert.Equal(t, "acme", sent.Subdomain)
	assert.Equal(t, time.Date(2025, 7, 17, 2, 0, 0, 0, time.UTC), sent.Timestamp)
	client.AssertExpectations(t)
}

func TestNotifyTenantPurged_SendError(t *testing.T) {
	client := new(mockSQS)
	svc := NewSQSService(client, &config.SQSConfig{PurgeQueueURL: "queue"})
	client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	err := svc.NotifyTenantPurged(context.Background(), &domain.Tenant{ID: "t1"})

	assert.ErrorContains(t, err, "failed to send message")
}
