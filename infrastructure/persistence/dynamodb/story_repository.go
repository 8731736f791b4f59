// Package dynamodb implements the story repository against DynamoDB. The
// table is a plain document store keyed by story id; no GSIs are required
// for the save/get contract.
package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"sensemaker-backend/application/ports"
	"sensemaker-backend/domain/core/aggregates"
	pkgerrors "sensemaker-backend/pkg/errors"
)

// StoryRepository implements ports.StoryRepository using DynamoDB
type StoryRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewStoryRepository creates a new DynamoDB story repository
func NewStoryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.StoryRepository {
	return &StoryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// storyItem is the DynamoDB item for a story: the shared persisted document
// plus the partition key.
type storyItem struct {
	PK string `dynamodbav:"PK"`
	aggregates.StoryDocument
}

// Save persists a story as an upsert keyed by its id
func (r *StoryRepository) Save(ctx context.Context, story *aggregates.Story) (string, error) {
	item := storyItem{
		PK:            story.ID(),
		StoryDocument: story.ToDocument(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return "", pkgerrors.NewStorageError("save", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to put story item",
			zap.String("storyID", story.ID()),
			zap.Error(err),
		)
		return "", pkgerrors.NewStorageError("save", err)
	}

	r.logger.Debug("story persisted",
		zap.String("storyID", story.ID()),
		zap.String("table", r.tableName),
	)
	return story.ID(), nil
}

// Get retrieves a story by id
func (r *StoryRepository) Get(ctx context.Context, id string) (*aggregates.Story, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		return nil, pkgerrors.NewStorageError("get", err)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, pkgerrors.NewStorageError("get", err)
		}
		r.logger.Error("failed to get story item",
			zap.String("storyID", id),
			zap.Error(err),
		)
		return nil, pkgerrors.NewStorageError("get", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("story", id)
	}

	var item storyItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewStorageError("get", err)
	}

	story, err := aggregates.ReconstructStory(item.PK, item.StoryDocument)
	if err != nil {
		// A stored document violating domain invariants is corruption, not
		// caller error.
		return nil, pkgerrors.NewStorageError("get", err)
	}
	return story, nil
}
