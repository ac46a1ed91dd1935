package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/events"
)

// ActivityService writes an audit trail of lifecycle events to the log.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger.Named("activity"),
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventJobStatusChanged, a.handleJobStatusChanged)
	a.dispatcher.Subscribe(events.EventJobDeleted, a.handleJobDeleted)
	a.dispatcher.Subscribe(events.EventApplicationSubmitted, a.handleApplicationSubmitted)
	a.dispatcher.Subscribe(events.EventApplicationStatusChanged, a.handleApplicationStatusChanged)
	a.dispatcher.SubscribeAll(a.trace)
}

func (a *ActivityService) trace(_ context.Context, event events.Event) error {
	a.logger.Debug("event published", zap.String("type", string(event.Type)), zap.String("event_id", event.ID))
	return nil
}

func (a *ActivityService) handleJobStatusChanged(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.JobStatusChangedPayload)
	a.logger.Info("JobStatusChanged",
		append(a.common(event),
			zap.String("old_status", string(payload.OldStatus)),
			zap.String("new_status", string(payload.NewStatus)))...)
	return nil
}

func (a *ActivityService) handleJobDeleted(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.JobDeletedPayload)
	a.logger.Info("JobDeleted", append(a.common(event), zap.String("title", payload.Title))...)
	return nil
}

func (a *ActivityService) handleApplicationSubmitted(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ApplicationSubmittedPayload)
	a.logger.Info("ApplicationSubmitted", append(a.common(event), zap.String("job_id", payload.JobID))...)
	return nil
}

func (a *ActivityService) handleApplicationStatusChanged(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ApplicationStatusChangedPayload)
	a.logger.Info("ApplicationStatusChanged",
		append(a.common(event),
			zap.String("job_id", payload.JobID),
			zap.String("old_status", string(payload.OldStatus)),
			zap.String("new_status", string(payload.NewStatus)))...)
	return nil
}

func (a *ActivityService) common(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Time("at", event.Timestamp),
	}
}
