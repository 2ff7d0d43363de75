package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	IncidentStatusActive   = "active"
	IncidentStatusResolved = "resolved"
)

// Приоритеты инцидента
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Incident struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ReportedBy  *uuid.UUID `json:"reported_by,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// IncidentPatch - частичное обновление инцидента. nil означает "не менять".
// ReportedBy и Timestamp не изменяются после создания, поэтому их здесь нет
type IncidentPatch struct {
	Type        *string
	Location    *string
	Description *string
	Status      *string
	Priority    *string
}

func (p IncidentPatch) IsEmpty() bool {
	return p.Type == nil && p.Location == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}

// IncidentFilter - предикат выборки инцидентов
type IncidentFilter struct {
	ReportedBy *uuid.UUID
	Status     *string
}

// ListOptions задает сортировку по времени создания и ограничение выборки
type ListOptions struct {
	Ascending bool
	Limit     int
}

// Reporter - краткие данные автора инцидента
type Reporter struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// IncidentWithReporter - инцидент с присоединенными данными автора
type IncidentWithReporter struct {
	Incident
	Reporter *Reporter `json:"reporter,omitempty"`
}
