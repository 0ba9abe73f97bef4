package analyzer_test

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aws-samples/aws-receipt-expense-extraction/internal/analyzer"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/expense"
)

type fakeTextract struct {
	textractiface.TextractAPI

	input  *textract.AnalyzeExpenseInput
	output *textract.AnalyzeExpenseOutput
	err    error
}

func (f *fakeTextract) AnalyzeExpenseWithContext(_ aws.Context, in *textract.AnalyzeExpenseInput, _ ...request.Option) (*textract.AnalyzeExpenseOutput, error) {
	f.input = in
	return f.output, f.err
}

func summaryField(label, value string) *textract.ExpenseField {
	return &textract.ExpenseField{
		Type:           &textract.ExpenseType{Text: aws.String(label)},
		ValueDetection: &textract.ExpenseDetection{Text: aws.String(value)},
	}
}

var _ = Describe("TextractAnalyzer", func() {
	var (
		client *fakeTextract
		a      *analyzer.TextractAnalyzer
		obj    = analyzer.ObjectRef{Bucket: "receipts-bucket", Key: "img1.png"}
	)

	BeforeEach(func() {
		client = &fakeTextract{}
		a = analyzer.NewTextractAnalyzer(client)
	})

	It("analyzes the referenced S3 object", func() {
		client.output = &textract.AnalyzeExpenseOutput{
			ExpenseDocuments: []*textract.ExpenseDocument{{}},
		}

		_, err := a.AnalyzeExpense(context.Background(), obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(aws.StringValue(client.input.Document.S3Object.Bucket)).To(Equal("receipts-bucket"))
		Expect(aws.StringValue(client.input.Document.S3Object.Name)).To(Equal("img1.png"))
	})

	It("maps summary fields of the first expense document only", func() {
		client.output = &textract.AnalyzeExpenseOutput{
			ExpenseDocuments: []*textract.ExpenseDocument{
				{SummaryFields: []*textract.ExpenseField{
					summaryField("VENDOR_NAME", "Joe's Diner"),
					summaryField("TOTAL", "$42.10"),
				}},
				{SummaryFields: []*textract.ExpenseField{
					summaryField("VENDOR_NAME", "Elsewhere"),
				}},
			},
		}

		entries, err := a.AnalyzeExpense(context.Background(), obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(Equal([]expense.FieldEntry{
			{Label: "VENDOR_NAME", Value: "Joe's Diner"},
			{Label: "TOTAL", Value: "$42.10"},
		}))
	})

	It("reads missing type or value detection as empty text", func() {
		client.output = &textract.AnalyzeExpenseOutput{
			ExpenseDocuments: []*textract.ExpenseDocument{
				{SummaryFields: []*textract.ExpenseField{
					{Type: &textract.ExpenseType{Text: aws.String("TOTAL")}},
					{ValueDetection: &textract.ExpenseDetection{Text: aws.String("orphan")}},
				}},
			},
		}

		entries, err := a.AnalyzeExpense(context.Background(), obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(Equal([]expense.FieldEntry{
			{Label: "TOTAL", Value: ""},
			{Label: "", Value: "orphan"},
		}))
	})

	It("reports unsupported documents", func() {
		client.err = awserr.New(textract.ErrCodeUnsupportedDocumentException, "Request has unsupported document format", nil)

		_, err := a.AnalyzeExpense(context.Background(), obj)
		Expect(err).To(MatchError(analyzer.ErrUnsupportedDocument))
		Expect(errors.Is(err, analyzer.ErrAnalysisFailed)).To(BeFalse())
	})

	It("reports any other service error as an analysis failure", func() {
		client.err = awserr.New(textract.ErrCodeThrottlingException, "slow down", nil)

		_, err := a.AnalyzeExpense(context.Background(), obj)
		Expect(err).To(MatchError(analyzer.ErrAnalysisFailed))
	})

	It("reports a response without expense documents as an analysis failure", func() {
		client.output = &textract.AnalyzeExpenseOutput{}

		_, err := a.AnalyzeExpense(context.Background(), obj)
		Expect(err).To(MatchError(analyzer.ErrAnalysisFailed))
	})
})
