// Package handler processes S3 upload events for receipt images.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"

	"github.com/aws-samples/aws-receipt-expense-extraction/internal/analyzer"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/expense"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/logger"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/notify"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/store"
)

const (
	MsgSuccess     = "Receipt processed successfully"
	MsgUnsupported = "Unsupported document format for expense analysis"
	MsgInternal    = "Internal server error"
	MsgStoreFailed = "Error saving to database"
)

// ErrNoRecords is returned for an event that carries no S3 record.
var ErrNoRecords = errors.New("s3 event has no records")

// FunctionResponse contains function output
type FunctionResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func respond(status int, message string) FunctionResponse {
	body, _ := json.Marshal(message)
	return FunctionResponse{StatusCode: status, Body: string(body)}
}

// Handler holds the collaborators created once per cold start
type Handler struct {
	analyzer analyzer.Analyzer
	store    store.Store
	notifier notify.Notifier
	log      zerolog.Logger
}

// New creates a handler. A nil notifier disables failure notifications.
func New(a analyzer.Analyzer, s store.Store, n notify.Notifier, log zerolog.Logger) *Handler {
	if n == nil {
		n = notify.Nop{}
	}
	return &Handler{analyzer: a, store: s, notifier: n, log: log}
}

// HandleRequest is function's handler
func (h *Handler) HandleRequest(ctx context.Context, event events.S3Event) (FunctionResponse, error) {
	if len(event.Records) == 0 {
		h.log.Error().Err(ErrNoRecords).Msg("Malformed event")
		return FunctionResponse{}, ErrNoRecords
	}

	obj := analyzer.ObjectRef{
		Bucket: event.Records[0].S3.Bucket.Name,
		Key:    event.Records[0].S3.Object.Key,
	}

	logCtx := h.log.With().Str("bucket", obj.Bucket).Str("key", obj.Key)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logCtx = logCtx.Str("request_id", lc.AwsRequestID)
	}
	log := logCtx.Logger()
	ctx = logger.WithContext(ctx, log)

	fields, err := h.analyzer.AnalyzeExpense(ctx, obj)
	if errors.Is(err, analyzer.ErrUnsupportedDocument) {
		return h.fail(ctx, obj, err, respond(http.StatusBadRequest, MsgUnsupported)), nil
	}
	if err != nil {
		return h.fail(ctx, obj, err, respond(http.StatusInternalServerError, MsgInternal)), nil
	}

	rec := expense.Reduce(fields)
	log.Debug().
		Str("receipt_id", rec.ReceiptID).
		Str("merchant_name", rec.MerchantName).
		Str("total", rec.Total.String()).
		Str("date", rec.Date).
		Int("fields", len(fields)).
		Msg("Extracted expense")

	if err := h.store.PutReceipt(ctx, rec); err != nil {
		return h.fail(ctx, obj, err, respond(http.StatusInternalServerError, MsgStoreFailed)), nil
	}

	log.Info().Str("receipt_id", rec.ReceiptID).Msg("Receipt registered")
	return respond(http.StatusOK, MsgSuccess), nil
}

func (h *Handler) fail(ctx context.Context, obj analyzer.ObjectRef, err error, res FunctionResponse) FunctionResponse {
	log := logger.FromContext(ctx)
	log.Error().Err(err).Int("status", res.StatusCode).Msg("Receipt not processed")

	f := notify.Failure{Bucket: obj.Bucket, Key: obj.Key, StatusCode: res.StatusCode, Reason: err.Error()}
	if nerr := h.notifier.NotifyFailure(ctx, f); nerr != nil {
		log.Warn().Err(nerr).Msg("Failure notification not sent")
	}
	return res
}
