// Package events publishes catalogue lifecycle messages to SQS so downstream
// consumers (newsletters, cache warmers) can react to listing changes.
// Publishing is best-effort: the storefront never fails a request because a
// message could not be sent.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/nexavault/storefront/internal/model"
)

const (
	// ActionCreated marks a product creation message.
	ActionCreated = "created"
	// ActionDeleted marks a product deletion message.
	ActionDeleted = "deleted"
)

// sqsAPI is the slice of the SQS client the publisher needs.
type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher handles publishing catalogue messages to AWS SQS.
type Publisher struct {
	client   sqsAPI
	queueURL string
}

// NewPublisher creates a new Publisher with the given client and queue URL.
func NewPublisher(client *sqs.Client, queueURL string) *Publisher {
	return &Publisher{
		client:   client,
		queueURL: queueURL,
	}
}

// ProductMessage represents a message about a catalogue event.
type ProductMessage struct {
	Action    string  `json:"action"`
	ProductID string  `json:"product_id"`
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
}

// NewProductMessage builds the message for a product lifecycle action.
func NewProductMessage(action string, product *model.Product) ProductMessage {
	return ProductMessage{
		Action:    action,
		ProductID: product.ID.String(),
		Slug:      product.Slug,
		Title:     product.Title,
		Price:     product.Price,
	}
}

// PublishProductMessage publishes a product message to the SQS queue.
func (p *Publisher) PublishProductMessage(ctx context.Context, msg ProductMessage) error {
	messageBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(messageBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
