// Package eventbridge publishes integration events to AWS EventBridge for
// the analysis pipelines downstream of submission.
package eventbridge

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"sensemaker-backend/application/ports"
	pkgerrors "sensemaker-backend/pkg/errors"
)

const (
	eventSource             = "sensemaker.stories"
	storySubmittedEventType = "story.submitted"
)

// Publisher implements ports.EventPublisher using AWS EventBridge
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// PublishStorySubmitted sends a story.submitted event to the bus
func (p *Publisher) PublishStorySubmitted(ctx context.Context, event ports.StorySubmittedEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal story.submitted event")
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(storySubmittedEventType),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(event.Timestamp),
			},
		},
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to publish story.submitted event")
	}
	if out.FailedEntryCount > 0 {
		p.logger.Error("event bus rejected story.submitted entry",
			zap.String("storyID", event.StoryID),
			zap.Int32("failedEntries", out.FailedEntryCount),
		)
		return pkgerrors.NewInternalError("event bus rejected story.submitted entry")
	}

	p.logger.Debug("published story.submitted event",
		zap.String("storyID", event.StoryID),
		zap.String("eventBus", p.eventBusName),
	)
	return nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
