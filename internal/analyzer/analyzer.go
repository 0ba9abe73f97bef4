// Package analyzer extracts expense summary fields from receipts stored in S3.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"

	"github.com/aws-samples/aws-receipt-expense-extraction/internal/expense"
)

var (
	// ErrUnsupportedDocument means the document format cannot be analyzed.
	ErrUnsupportedDocument = errors.New("unsupported document format")
	// ErrAnalysisFailed covers every other analysis failure.
	ErrAnalysisFailed = errors.New("expense analysis failed")
)

// ObjectRef identifies the uploaded receipt
type ObjectRef struct {
	Bucket string
	Key    string
}

func (o ObjectRef) String() string {
	return "s3://" + o.Bucket + "/" + o.Key
}

// Analyzer returns the summary fields of the first expense document found in a receipt.
type Analyzer interface {
	AnalyzeExpense(ctx context.Context, obj ObjectRef) ([]expense.FieldEntry, error)
}

// TextractAnalyzer calls Textract AnalyzeExpense
type TextractAnalyzer struct {
	client textractiface.TextractAPI
}

// NewTextractAnalyzer creates an analyzer backed by the given Textract client.
func NewTextractAnalyzer(client textractiface.TextractAPI) *TextractAnalyzer {
	return &TextractAnalyzer{client: client}
}

// AnalyzeExpense runs the analysis and maps summary fields of the first
// expense document. A missing label or value reads as "".
func (a *TextractAnalyzer) AnalyzeExpense(ctx context.Context, obj ObjectRef) ([]expense.FieldEntry, error) {
	input := &textract.AnalyzeExpenseInput{
		Document: &textract.Document{
			S3Object: &textract.S3Object{
				Bucket: aws.String(obj.Bucket),
				Name:   aws.String(obj.Key),
			},
		},
	}

	output, err := a.client.AnalyzeExpenseWithContext(ctx, input)
	if err != nil {
		return nil, classify(err)
	}

	if len(output.ExpenseDocuments) == 0 || output.ExpenseDocuments[0] == nil {
		return nil, fmt.Errorf("%w: no expense documents in %s", ErrAnalysisFailed, obj)
	}

	fields := output.ExpenseDocuments[0].SummaryFields
	entries := make([]expense.FieldEntry, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		var e expense.FieldEntry
		if f.Type != nil {
			e.Label = aws.StringValue(f.Type.Text)
		}
		if f.ValueDetection != nil {
			e.Value = aws.StringValue(f.ValueDetection.Text)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func classify(err error) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == textract.ErrCodeUnsupportedDocumentException {
		return fmt.Errorf("%w: %s", ErrUnsupportedDocument, aerr.Message())
	}
	return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
}
