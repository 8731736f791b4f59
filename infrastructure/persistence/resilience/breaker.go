// Package resilience decorates the story repository with a circuit breaker.
// Retry and back-off policy belongs to the storage adapter layer; the
// submission workflow only ever sees a StorageError.
package resilience

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"sensemaker-backend/application/ports"
	"sensemaker-backend/domain/core/aggregates"
	pkgerrors "sensemaker-backend/pkg/errors"
)

// BreakerSettings holds circuit breaker tuning for the story store
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerSettings returns the default breaker tuning
func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerRepository wraps a story repository with a circuit breaker
type BreakerRepository struct {
	inner   ports.StoryRepository
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewBreakerRepository creates a circuit-breaking story repository decorator
func NewBreakerRepository(inner ports.StoryRepository, settings BreakerSettings, logger *zap.Logger) *BreakerRepository {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("story store circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// NotFound is a normal lookup outcome, not a store fault.
			return err == nil || pkgerrors.IsNotFound(err)
		},
	})

	return &BreakerRepository{
		inner:   inner,
		breaker: cb,
		logger:  logger,
	}
}

// Save persists a story through the breaker
func (r *BreakerRepository) Save(ctx context.Context, story *aggregates.Story) (string, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.Save(ctx, story)
	})
	if err != nil {
		return "", r.mapError("save", err)
	}
	return result.(string), nil
}

// Get retrieves a story through the breaker
func (r *BreakerRepository) Get(ctx context.Context, id string) (*aggregates.Story, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.Get(ctx, id)
	})
	if err != nil {
		return nil, r.mapError("get", err)
	}
	return result.(*aggregates.Story), nil
}

// mapError converts breaker rejections into storage errors while letting
// repository errors pass through unchanged.
func (r *BreakerRepository) mapError(operation string, err error) error {
	switch err {
	case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
		return pkgerrors.NewStorageError(operation, err)
	default:
		return err
	}
}

var _ ports.StoryRepository = (*BreakerRepository)(nil)
