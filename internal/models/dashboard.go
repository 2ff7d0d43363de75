package models

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard - сводный снимок обстановки. Не сохраняется в хранилище
type Dashboard struct {
	Alerts          []*Alert
	Zones           []*Zone
	Resources       DashboardResources
	ActiveIncidents int
	RecentUpdates   []RecentUpdate
}

type DashboardResources struct {
	Ambulances  *Resource
	FireTrucks  *Resource
	RescueTeams *Resource
	Shelters    *Resource
}

// RecentUpdate - запись ленты последних инцидентов
type RecentUpdate struct {
	ID        uuid.UUID
	Message   string
	Timestamp time.Time
}

// AdminSummary - счетчики для администраторов. Каждый считается отдельным запросом
type AdminSummary struct {
	TotalUsers        int
	TotalIncidents    int
	ActiveIncidents   int
	ResolvedIncidents int
	TotalResources    int
	TotalAlerts       int
}
