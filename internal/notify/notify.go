// Package notify tells the receipt submitter when a receipt could not be processed.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
)

const subject = "Submitted receipt was not processed"

// Failure describes a receipt that was not registered
type Failure struct {
	Bucket     string
	Key        string
	StatusCode int
	Reason     string
}

// Notifier reports failed receipts.
type Notifier interface {
	NotifyFailure(ctx context.Context, f Failure) error
}

// Nop drops every notification. Used when no topic is configured.
type Nop struct{}

func (Nop) NotifyFailure(context.Context, Failure) error { return nil }

// SNSNotifier publishes failures to an SNS topic
type SNSNotifier struct {
	client snsiface.SNSAPI
	topic  string
}

func NewSNSNotifier(client snsiface.SNSAPI, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topic: topicARN}
}

func (n *SNSNotifier) NotifyFailure(ctx context.Context, f Failure) error {
	message := sns.PublishInput{
		Message:  aws.String(Message(f)),
		Subject:  aws.String(subject),
		TopicArn: aws.String(n.topic),
	}

	if _, err := n.client.PublishWithContext(ctx, &message); err != nil {
		return fmt.Errorf("publish failure notification for s3://%s/%s: %w", f.Bucket, f.Key, err)
	}
	return nil
}

// Message renders the notification body.
func Message(f Failure) string {
	var b strings.Builder
	b.WriteString("Hello \n\n")
	fmt.Fprintf(&b, "Receipt: s3://%s/%s could not be processed (status %d). \n\n", f.Bucket, f.Key, f.StatusCode)
	fmt.Fprintf(&b, "Reason: %s \n\n", f.Reason)
	b.WriteString("Please provide a legible receipt or register the expense manually. \n\n")
	b.WriteString("Thank you. \n\n")
	return b.String()
}
