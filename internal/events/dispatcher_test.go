package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventJobDeleted, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.SubjectID)
		return errors.New("boom")
	})
	d.Subscribe(EventJobDeleted, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})
	d.SubscribeAll(func(_ context.Context, e Event) error {
		calls = append(calls, "all:"+string(e.Type))
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventJobDeleted, SubjectID: "job-1"})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:job-1", "second:job-1", "all:job_deleted"}, calls)
}

func TestPublishStampsEvent(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen Event
	d.SubscribeAll(func(_ context.Context, e Event) error {
		seen = e
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventJobStatusChanged}))
	assert.NotEmpty(t, seen.ID)
	assert.False(t, seen.Timestamp.IsZero())

	require.NoError(t, d.Publish(context.Background(), Event{ID: "fixed", Type: EventJobStatusChanged}))
	assert.Equal(t, "fixed", seen.ID)
}

func TestPublishRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()
	ran := false
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		panic("bad handler")
	})
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventApplicationSubmitted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.True(t, ran)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventJobStatusChanged}))
}
