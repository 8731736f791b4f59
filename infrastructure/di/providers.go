package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"sensemaker-backend/application/ports"
	"sensemaker-backend/application/services"
	"sensemaker-backend/domain/catalog"
	"sensemaker-backend/infrastructure/config"
	"sensemaker-backend/infrastructure/messaging/eventbridge"
	"sensemaker-backend/infrastructure/persistence/dynamodb"
	"sensemaker-backend/infrastructure/persistence/resilience"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	Catalog           *catalog.Catalog
	StoryRepo         ports.StoryRepository
	EventPublisher    ports.EventPublisher
	SubmissionService *services.SubmissionService
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideCatalog loads the triad catalog. A catalog that fails to load or
// validate aborts container construction; the process must not serve traffic
// without a valid catalog.
func ProvideCatalog(cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.TriadCatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("triad catalog loaded",
		zap.String("path", cfg.TriadCatalogPath),
		zap.String("version", cat.Version()),
		zap.Int("triads", cat.Len()),
	)
	return cat, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideStoryRepository creates the story repository: the DynamoDB adapter
// behind a circuit breaker.
func ProvideStoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.StoryRepository {
	repo := dynamodb.NewStoryRepository(client, cfg.DynamoDBTable, logger)
	return resilience.NewBreakerRepository(repo, resilience.DefaultBreakerSettings("story-store"), logger)
}

// ProvideEventPublisher creates the story event publisher, or nil when
// events are disabled.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideSubmissionService creates the submission service
func ProvideSubmissionService(
	repo ports.StoryRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.SubmissionService {
	return services.NewSubmissionService(repo, publisher, logger)
}
