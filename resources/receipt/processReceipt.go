package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/textract"

	"github.com/aws-samples/aws-receipt-expense-extraction/internal/analyzer"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/config"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/handler"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/logger"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/notify"
	"github.com/aws-samples/aws-receipt-expense-extraction/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	awsCfg := aws.NewConfig()
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	sess := session.Must(session.NewSession(awsCfg))

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Topic != "" {
		notifier = notify.NewSNSNotifier(sns.New(sess), cfg.Topic)
	}

	h := handler.New(
		analyzer.NewTextractAnalyzer(textract.New(sess)),
		store.NewDynamoStore(dynamodb.New(sess), cfg.Table),
		notifier,
		log,
	)

	log.Info().
		Str("table", cfg.Table).
		Bool("notifications", cfg.Topic != "").
		Msg("Receipt processor ready")

	lambda.Start(h.HandleRequest)
}
