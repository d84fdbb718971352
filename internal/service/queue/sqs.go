package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
)

type MessageType string

const (
	MessageTypeTenantPurged MessageType = "TENANT_PURGED"
)

type Message struct {
	Type      MessageType `json:"type"`
	TenantID  string      `json:"tenant_id"`
	Subdomain string      `json:"subdomain"`
	Timestamp time.Time   `json:"timestamp"`
}

// SQSAPI is the subset of the SQS client used here.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSService struct {
	client        SQSAPI
	purgeQueueURL string
	now           func() time.Time
}

func NewSQSService(client SQSAPI, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:        client,
		purgeQueueURL: config.PurgeQueueURL,
		now:           time.Now,
	}
}

// NotifyTenantPurged tells downstream modules that every row belonging to
// tenant may be dropped.
func (s *SQSService) NotifyTenantPurged(ctx context.Context, tenant *domain.Tenant) error {
	msg := Message{
		Type:      MessageTypeTenantPurged,
		TenantID:  tenant.ID,
		Subdomain: tenant.Subdomain,
		Timestamp: s.now().UTC(),
	}

	return s.sendMessage(ctx, msg, s.purgeQueueURL)
}

func (s *SQSService) sendMessage(ctx context.Context, msg Message, queueURL string) error {
	msgBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(queueURL),
	}

	_, err = s.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
