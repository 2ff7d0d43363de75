package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service"
)

const incidentColumns = `id, type, location, description, status, priority, reported_by, created_at`

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{db: db}
}

func scanIncident(row rowScanner) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.Type,
		&incident.Location,
		&incident.Description,
		&incident.Status,
		&incident.Priority,
		&incident.ReportedBy,
		&incident.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// Create создает новую запись об инциденте в бд. id и время создания назначает бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (type, location, description, status, priority, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Location,
		incident.Description,
		incident.Status,
		incident.Priority,
		incident.ReportedBy,
	).Scan(&incident.ID, &incident.Timestamp)
	if err != nil {
		return mapError("failed to create incident", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to get incident %s", id), err)
	}
	return incident, nil
}

// Find возвращает инциденты, удовлетворяющие фильтру, отсортированные по времени создания
func (r *IncidentRepository) Find(ctx context.Context, filter models.IncidentFilter, opts models.ListOptions) ([]*models.Incident, error) {
	b := incidentWhere(filter)
	query := `SELECT ` + incidentColumns + ` FROM incidents` + b.sql() + b.orderByCreated(opts)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapError("failed to list incidents", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, mapError("failed to scan incident row", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("error list iteration", err)
	}
	return incidents, nil
}

// FindWithReporters возвращает все инциденты вместе с именем и email автора
func (r *IncidentRepository) FindWithReporters(ctx context.Context, opts models.ListOptions) ([]*models.IncidentWithReporter, error) {
	b := &whereBuilder{}
	query := `
		SELECT
			i.id, i.type, i.location, i.description, i.status, i.priority, i.reported_by, i.created_at,
			u.name, u.email
		FROM incidents i
		LEFT JOIN users u ON u.id = i.reported_by
	` + b.orderBy("i.created_at", "i.id", opts)

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapError("failed to list incidents with reporters", err)
	}
	defer rows.Close()

	result := make([]*models.IncidentWithReporter, 0)
	for rows.Next() {
		item := &models.IncidentWithReporter{}
		var name, email *string
		err := rows.Scan(
			&item.ID,
			&item.Type,
			&item.Location,
			&item.Description,
			&item.Status,
			&item.Priority,
			&item.ReportedBy,
			&item.Timestamp,
			&name,
			&email,
		)
		if err != nil {
			return nil, mapError("failed to scan incident row", err)
		}
		if item.ReportedBy != nil && name != nil && email != nil {
			item.Reporter = &models.Reporter{ID: *item.ReportedBy, Name: *name, Email: *email}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("error list iteration", err)
	}
	return result, nil
}

// Count возвращает количество инцидентов по фильтру
func (r *IncidentRepository) Count(ctx context.Context, filter models.IncidentFilter) (int, error) {
	b := incidentWhere(filter)
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM incidents`+b.sql(), b.args...).Scan(&count); err != nil {
		return 0, mapError("failed to count incidents", err)
	}
	return count, nil
}

// Update частично обновляет инцидент и возвращает запись после обновления.
// Поля, равные nil, остаются без изменений
func (r *IncidentRepository) Update(ctx context.Context, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error) {
	query := `
		UPDATE incidents SET
			type = COALESCE($1, type),
			location = COALESCE($2, location),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			priority = COALESCE($5, priority)
		WHERE id = $6
		RETURNING ` + incidentColumns + `;
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query,
		patch.Type,
		patch.Location,
		patch.Description,
		patch.Status,
		patch.Priority,
		id,
	))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to update incident %s", id), err)
	}
	return incident, nil
}

func incidentWhere(filter models.IncidentFilter) *whereBuilder {
	b := &whereBuilder{}
	if filter.ReportedBy != nil {
		b.add("reported_by", *filter.ReportedBy)
	}
	if filter.Status != nil {
		b.add("status", *filter.Status)
	}
	return b
}
