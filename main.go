package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"order-notifier/internal/config"
	"order-notifier/internal/logging"
	"order-notifier/internal/orders"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := logging.Must(cfg.Log.Level)
	defer logger.Sync() //nolint:errcheck

	// Load AWS configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal("unable to load SDK config", zap.Error(err))
	}

	store := orders.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Orders.TableName, cfg.Orders.KeyName)
	h := orders.NewHandler(store, logger)

	lambda.Start(h.Handle)
}
