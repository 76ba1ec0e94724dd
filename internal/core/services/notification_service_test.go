package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gatepass/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	types  []string
	bodies [][]byte
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, eventType string, body []byte) error {
	f.types = append(f.types, eventType)
	f.bodies = append(f.bodies, body)
	return f.err
}

func TestNotificationService_Disabled(t *testing.T) {
	svc := NewNotificationService(nil)

	assert.False(t, svc.IsEnabled())
	svc.NotifyPassCreated(&domain.Pass{ID: "1"})
}

func TestNotificationService_PublishesEvents(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewNotificationService(pub)
	pass := &domain.Pass{ID: "p1", Status: domain.PassStatusApproved}

	svc.NotifyPassCreated(pass)
	svc.NotifyStatusChanged(pass)
	svc.NotifyPassUsed(pass)

	require.Equal(t, []string{EventPassCreated, EventPassStatusChanged, EventPassUsed}, pub.types)

	var ev PassEvent
	require.NoError(t, json.Unmarshal(pub.bodies[1], &ev))
	assert.Equal(t, EventPassStatusChanged, ev.Type)
	assert.Equal(t, "p1", ev.Pass.ID)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestNotificationService_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewNotificationService(pub)

	assert.NotPanics(t, func() {
		svc.NotifyPassUsed(&domain.Pass{ID: "p1"})
	})
	assert.Len(t, pub.types, 1)
}
