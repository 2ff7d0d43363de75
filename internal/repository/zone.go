package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service"
)

type ZoneRepository struct {
	db *pgxpool.Pool
}

func NewZoneRepository(db *pgxpool.Pool) service.ZoneRepository {
	return &ZoneRepository{db: db}
}

// CreateMany добавляет зоны, пропуская уже существующие имена
func (r *ZoneRepository) CreateMany(ctx context.Context, zones []*models.Zone) (int, error) {
	batch := &pgx.Batch{}
	for _, zone := range zones {
		batch.Queue(`
			INSERT INTO zones (position, name, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING;
		`, zone.Position, zone.Name, string(zone.Status))
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range zones {
		tag, err := br.Exec()
		if err != nil {
			return inserted, mapError("failed to insert zone batch", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *ZoneRepository) List(ctx context.Context) ([]*models.Zone, error) {
	rows, err := r.db.Query(ctx, `SELECT id, position, name, status FROM zones ORDER BY position ASC, name ASC;`)
	if err != nil {
		return nil, mapError("failed to list zones", err)
	}
	defer rows.Close()

	zones := make([]*models.Zone, 0)
	for rows.Next() {
		zone := &models.Zone{}
		var status string
		if err := rows.Scan(&zone.ID, &zone.Position, &zone.Name, &status); err != nil {
			return nil, mapError("failed to scan zone row", err)
		}
		zone.Status = models.ZoneStatus(status)
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("error list iteration", err)
	}
	return zones, nil
}

func (r *ZoneRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM zones;`).Scan(&count); err != nil {
		return 0, mapError("failed to count zones", err)
	}
	return count, nil
}

func (r *ZoneRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ZoneStatus) (*models.Zone, error) {
	zone := &models.Zone{}
	var stored string
	err := r.db.QueryRow(ctx, `
		UPDATE zones SET status = $1 WHERE id = $2
		RETURNING id, position, name, status;
	`, string(status), id).Scan(&zone.ID, &zone.Position, &zone.Name, &stored)
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to update zone %s", id), err)
	}
	zone.Status = models.ZoneStatus(stored)
	return zone, nil
}
