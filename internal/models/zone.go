package models

import "github.com/google/uuid"

// ZoneStatus - уровень опасности зоны
type ZoneStatus string

const (
	ZoneSafe     ZoneStatus = "safe"
	ZoneWatch    ZoneStatus = "watch"
	ZoneEvacuate ZoneStatus = "evacuate"
)

func ParseZoneStatus(s string) (ZoneStatus, bool) {
	switch ZoneStatus(s) {
	case ZoneSafe, ZoneWatch, ZoneEvacuate:
		return ZoneStatus(s), true
	}
	return "", false
}

type Zone struct {
	ID       uuid.UUID  `json:"id"`
	Position int        `json:"position"`
	Name     string     `json:"name"`
	Status   ZoneStatus `json:"status"`
}
