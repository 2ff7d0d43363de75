package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_response_system/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Webhook-Signature"
	popTimeout      = 5 * time.Second
)

// WebhookWorker забирает события из очереди и доставляет их на WEBHOOK_URL
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	sleep       func(ctx context.Context, d time.Duration) bool
}

func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		sleep: sleepContext,
	}
}

// Start запускает горутину обработки очереди. Возвращенный канал закрывается после остановки
func (w *WebhookWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(done)
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping webhook worker.")
				return
			}

			result, err := w.redisClient.BRPop(ctx, popTimeout, webhookQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop webhook event from Redis")
				w.sleep(ctx, w.cfg.WebhookBaseDelay)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var event IncidentEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal webhook event from Redis")
				continue
			}

			if err := w.deliver(ctx, event, []byte(payload)); err != nil {
				w.logger.WithError(err).WithField("incident_id", event.IncidentID).Error("Webhook delivery abandoned")
			}
		}
	}()
	return done
}

// deliver отправляет событие с экспоненциальной задержкой между попытками
func (w *WebhookWorker) deliver(ctx context.Context, event IncidentEvent, payload []byte) error {
	log := w.logger.WithFields(logrus.Fields{
		"incident_id": event.IncidentID,
		"event":       event.Event,
	})
	log.Debug("Processing webhook event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return nil
	}

	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = w.send(ctx, payload)
		if lastErr == nil {
			log.WithField("attempt", attempt).Info("Webhook delivered successfully.")
			return nil
		}
		if attempt == maxRetries {
			break
		}
		log.WithError(lastErr).Warnf("Webhook delivery failed. Retrying in %v. Retries left: %d", delay, maxRetries-attempt)
		if !w.sleep(ctx, delay) {
			return ctx.Err()
		}
		delay *= 2
	}

	return fmt.Errorf("failed to deliver webhook after %d attempts: %w", maxRetries, lastErr)
}

func (w *WebhookWorker) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.cfg.WebhookSecret != "" {
		req.Header.Set(signatureHeader, Sign(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint responded with status %d", resp.StatusCode)
	}
	return nil
}

// Sign возвращает HMAC-SHA256 подпись тела запроса в hex
func Sign(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
