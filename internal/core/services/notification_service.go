package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gatepass/internal/core/domain"
)

// Pass event types
const (
	EventPassCreated       = "pass.created"
	EventPassStatusChanged = "pass.status_changed"
	EventPassUsed          = "pass.used"
)

// EventPublisher delivers an encoded event to a broker
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, body []byte) error
}

// PassEvent is the message body published for every lifecycle change
type PassEvent struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Pass       *domain.Pass `json:"pass"`
}

// NotificationService publishes pass events. Failures are logged and never reach the caller.
type NotificationService struct {
	publisher EventPublisher
	enabled   bool
	timeout   time.Duration
}

// NewNotificationService creates a new notification service; a nil publisher disables it
func NewNotificationService(publisher EventPublisher) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		enabled:   publisher != nil,
		timeout:   5 * time.Second,
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// NotifyPassCreated publishes pass.created
func (s *NotificationService) NotifyPassCreated(pass *domain.Pass) {
	s.publish(EventPassCreated, pass)
}

// NotifyStatusChanged publishes pass.status_changed
func (s *NotificationService) NotifyStatusChanged(pass *domain.Pass) {
	s.publish(EventPassStatusChanged, pass)
}

// NotifyPassUsed publishes pass.used
func (s *NotificationService) NotifyPassUsed(pass *domain.Pass) {
	s.publish(EventPassUsed, pass)
}

func (s *NotificationService) publish(eventType string, pass *domain.Pass) {
	if !s.enabled {
		return
	}

	body, err := json.Marshal(PassEvent{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Pass:       pass,
	})
	if err != nil {
		log.Printf("⚠️ Failed to encode %s event: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, eventType, body); err != nil {
		log.Printf("⚠️ Failed to publish %s for pass %s: %v", eventType, pass.ID, err)
	}
}
