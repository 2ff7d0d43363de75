package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_response_system/internal/models"
)

const (
	webhookQueueKey = "incident_events"
)

// Виды событий инцидента
const (
	EventIncidentReported = "incident.reported"
	EventIncidentUpdated  = "incident.updated"
)

// IncidentEvent - событие для диспетчерского вебхука
type IncidentEvent struct {
	Event      string     `json:"event"`
	IncidentID uuid.UUID  `json:"incident_id"`
	Type       string     `json:"type"`
	Location   string     `json:"location"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	ReportedBy *uuid.UUID `json:"reported_by,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewIncidentEvent собирает событие по состоянию инцидента
func NewIncidentEvent(event string, incident *models.Incident, at time.Time) IncidentEvent {
	return IncidentEvent{
		Event:      event,
		IncidentID: incident.ID,
		Type:       incident.Type,
		Location:   incident.Location,
		Status:     incident.Status,
		Priority:   incident.Priority,
		ReportedBy: incident.ReportedBy,
		OccurredAt: at.UTC(),
	}
}

// WebhookPublisher - интерфейс для публикации событий вебхука
type WebhookPublisher interface {
	Publish(ctx context.Context, event IncidentEvent) error
}

// RedisWebhookPublisher кладет события в список Redis, откуда их забирает WebhookWorker
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

func (p *RedisWebhookPublisher) Publish(ctx context.Context, event IncidentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH + BRPOP в воркере дают FIFO
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// NopPublisher используется, когда WEBHOOK_URL не задан
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, IncidentEvent) error { return nil }
