package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service"
)

const alertColumns = `id, message, type, zone, status, created_at`

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

func scanAlert(row rowScanner) (*models.Alert, error) {
	alert := &models.Alert{}
	if err := row.Scan(&alert.ID, &alert.Message, &alert.Type, &alert.Zone, &alert.Status, &alert.Timestamp); err != nil {
		return nil, err
	}
	return alert, nil
}

func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (message, type, zone, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query, alert.Message, alert.Type, alert.Zone, alert.Status).
		Scan(&alert.ID, &alert.Timestamp)
	if err != nil {
		return mapError("failed to create alert", err)
	}
	return nil
}

// List возвращает оповещения по фильтру, самые свежие первыми
func (r *AlertRepository) List(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error) {
	b := &whereBuilder{}
	if filter.Status != nil {
		b.add("status", *filter.Status)
	}
	query := `SELECT ` + alertColumns + ` FROM alerts` + b.sql() + b.orderByCreated(models.ListOptions{})

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapError("failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, mapError("failed to scan alert row", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("error list iteration", err)
	}
	return alerts, nil
}

func (r *AlertRepository) Count(ctx context.Context, filter models.AlertFilter) (int, error) {
	b := &whereBuilder{}
	if filter.Status != nil {
		b.add("status", *filter.Status)
	}
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM alerts`+b.sql(), b.args...).Scan(&count); err != nil {
		return 0, mapError("failed to count alerts", err)
	}
	return count, nil
}

func (r *AlertRepository) Update(ctx context.Context, id uuid.UUID, patch models.AlertPatch) (*models.Alert, error) {
	query := `
		UPDATE alerts SET
			message = COALESCE($1, message),
			type = COALESCE($2, type),
			zone = COALESCE($3, zone),
			status = COALESCE($4, status)
		WHERE id = $5
		RETURNING ` + alertColumns + `;
	`
	alert, err := scanAlert(r.db.QueryRow(ctx, query, patch.Message, patch.Type, patch.Zone, patch.Status, id))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to update alert %s", id), err)
	}
	return alert, nil
}

func (r *AlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM alerts WHERE id = $1;`, id)
	if err != nil {
		return mapError("failed to delete alert", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("alert with id %s not found for delete: %w", id, models.ErrNotFound)
	}
	return nil
}
