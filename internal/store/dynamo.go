// Package store persists expense records to DynamoDB.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/shopspring/decimal"

	"github.com/aws-samples/aws-receipt-expense-extraction/internal/expense"
)

// ErrStoreFailed wraps any failure to write a receipt.
var ErrStoreFailed = errors.New("store receipt")

// Store saves one expense record
type Store interface {
	PutReceipt(ctx context.Context, rec expense.Record) error
}

// Item is the DynamoDB row of a receipt, keyed by receipt_id
type Item struct {
	ReceiptID    string `dynamodbav:"receipt_id"`
	MerchantName string `dynamodbav:"merchant_name"`
	Total        Number `dynamodbav:"total"`
	Date         string `dynamodbav:"date"`
}

// Number is a decimal written as a DynamoDB number without going through float64.
type Number struct {
	decimal.Decimal
}

func (n Number) MarshalDynamoDBAttributeValue(av *dynamodb.AttributeValue) error {
	av.N = aws.String(n.String())
	return nil
}

func (n *Number) UnmarshalDynamoDBAttributeValue(av *dynamodb.AttributeValue) error {
	if av.N == nil {
		return fmt.Errorf("total: expected number attribute")
	}
	d, err := decimal.NewFromString(*av.N)
	if err != nil {
		return fmt.Errorf("total: %w", err)
	}
	n.Decimal = d
	return nil
}

// NewItem converts a record to its table row.
func NewItem(rec expense.Record) Item {
	return Item{
		ReceiptID:    rec.ReceiptID,
		MerchantName: rec.MerchantName,
		Total:        Number{rec.Total},
		Date:         rec.Date,
	}
}

// DynamoStore writes receipts to a single table
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewDynamoStore creates a store writing into table.
func NewDynamoStore(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// PutReceipt issues exactly one PutItem for the record.
func (s *DynamoStore) PutReceipt(ctx context.Context, rec expense.Record) error {
	row, err := dynamodbattribute.MarshalMap(NewItem(rec))
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrStoreFailed, rec.ReceiptID, err)
	}

	entry := &dynamodb.PutItemInput{
		Item:      row,
		TableName: aws.String(s.table),
	}

	if _, err := s.client.PutItemWithContext(ctx, entry); err != nil {
		return fmt.Errorf("%w: put %s into %s: %v", ErrStoreFailed, rec.ReceiptID, s.table, err)
	}
	return nil
}
