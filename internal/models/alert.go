package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

type Alert struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Zone      string    `json:"zone"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type AlertPatch struct {
	Message *string
	Type    *string
	Zone    *string
	Status  *string
}

type AlertFilter struct {
	Status *string
}
