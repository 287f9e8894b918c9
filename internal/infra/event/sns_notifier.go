package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamestore/internal/currency"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/shopspring/decimal"
)

var ErrTopicNotConfigured = errors.New("SNS_TOPIC_ARN is not configured")

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier は注文の人間向けサマリをSNSトピックに流す。
type SNSNotifier struct {
	client   snsAPI
	topicARN string
}

func NewSNSNotifier(cfg aws.Config, topicARN string) *SNSNotifier {
	return &SNSNotifier{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}
}

func (n *SNSNotifier) NotifyOrderPlaced(ctx context.Context, orderID int64, buyerEmail string, total decimal.Decimal, at time.Time) error {
	if n.topicARN == "" {
		return ErrTopicNotConfigured
	}

	subject := fmt.Sprintf("New Game Store Order #%d", orderID)
	message := fmt.Sprintf(
		"A new order has been placed.\n\n"+
			"Order ID: %d\n"+
			"Buyer: %s\n"+
			"Total: %s\n"+
			"Time (UTC): %s\n",
		orderID, buyerEmail, currency.FormatEUR(total),
		at.UTC().Format("2006-01-02T15:04:05"),
	)

	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("publish order notification to SNS: %w", err)
	}
	return nil
}
