package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gamestore/internal/event"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// 宛先未設定は「確定失敗」。panicにはしない。
var ErrQueueNotConfigured = errors.New("SQS_QUEUE_URL is not configured")

type sqsAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher は注文イベントをSQSへ送る。
type SQSPublisher struct {
	client   sqsAPI
	queueURL string
}

func NewSQSPublisher(cfg aws.Config, queueURL string) *SQSPublisher {
	return &SQSPublisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}
}

func (p *SQSPublisher) PublishOrderPlaced(ctx context.Context, ev event.OrderPlaced) error {
	if p.queueURL == "" {
		return ErrQueueNotConfigured
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("send order event to SQS: %w", err)
	}
	return nil
}
