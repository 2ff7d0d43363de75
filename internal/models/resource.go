package models

import (
	"time"

	"github.com/google/uuid"
)

// Канонические типы ресурсов, по которым группирует дашборд
const (
	ResourceAmbulance  = "ambulance"
	ResourceFireTruck  = "fire_truck"
	ResourceRescueTeam = "rescue_team"
	ResourceShelter    = "shelter"
)

type Resource struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Available int       `json:"available"`
	Total     int       `json:"total"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// ZeroResource возвращает запись-заглушку {available: 0, total: 0} для отсутствующего типа
func ZeroResource(resourceType string) *Resource {
	return &Resource{Type: resourceType}
}

// Valid проверяет инвариант 0 <= available <= total
func (r *Resource) Valid() bool {
	return r.Available >= 0 && r.Total >= 0 && r.Available <= r.Total
}

type ResourcePatch struct {
	Type      *string
	Available *int
	Total     *int
	Location  *string
}

// Apply возвращает копию ресурса с примененным патчем
func (p ResourcePatch) Apply(r Resource) Resource {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Available != nil {
		r.Available = *p.Available
	}
	if p.Total != nil {
		r.Total = *p.Total
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	return r
}

// NewResource - входные данные для создания ресурса. Available по умолчанию равен Total
type NewResource struct {
	Type      string
	Available *int
	Total     *int
	Location  string
}
