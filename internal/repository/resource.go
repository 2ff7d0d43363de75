package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service"
)

const resourceColumns = `id, type, available, total, location, created_at`

type ResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) service.ResourceRepository {
	return &ResourceRepository{db: db}
}

func scanResource(row rowScanner) (*models.Resource, error) {
	resource := &models.Resource{}
	err := row.Scan(
		&resource.ID,
		&resource.Type,
		&resource.Available,
		&resource.Total,
		&resource.Location,
		&resource.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return resource, nil
}

// Create добавляет ресурс. Повтор типа дает ErrConflict (уникальный индекс по type)
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (type, available, total, location)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		resource.Type,
		resource.Available,
		resource.Total,
		resource.Location,
	).Scan(&resource.ID, &resource.CreatedAt)
	if err != nil {
		return mapError("failed to create resource", err)
	}
	return nil
}

// CreateMany вставляет пачку ресурсов одним батчем, пропуская уже существующие типы.
// Возвращает количество реально добавленных записей
func (r *ResourceRepository) CreateMany(ctx context.Context, resources []*models.Resource) (int, error) {
	batch := &pgx.Batch{}
	for _, resource := range resources {
		batch.Queue(`
			INSERT INTO resources (type, available, total, location)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (type) DO NOTHING;
		`, resource.Type, resource.Available, resource.Total, resource.Location)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range resources {
		tag, err := br.Exec()
		if err != nil {
			return inserted, mapError("failed to insert resource batch", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1;`
	resource, err := scanResource(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to get resource %s", id), err)
	}
	return resource, nil
}

// GetByType возвращает первую по времени создания запись заданного типа
func (r *ResourceRepository) GetByType(ctx context.Context, resourceType string) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE type = $1 ORDER BY created_at ASC, id ASC LIMIT 1;`
	resource, err := scanResource(r.db.QueryRow(ctx, query, resourceType))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to get resource of type %q", resourceType), err)
	}
	return resource, nil
}

// List возвращает все ресурсы в порядке создания
func (r *ResourceRepository) List(ctx context.Context) ([]*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources ORDER BY created_at ASC, id ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to list resources", err)
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, mapError("failed to scan resource row", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("error list iteration", err)
	}
	return resources, nil
}

func (r *ResourceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM resources;`).Scan(&count); err != nil {
		return 0, mapError("failed to count resources", err)
	}
	return count, nil
}

// Update частично обновляет ресурс. CHECK-ограничение в бд не дает нарушить available <= total
func (r *ResourceRepository) Update(ctx context.Context, id uuid.UUID, patch models.ResourcePatch) (*models.Resource, error) {
	query := `
		UPDATE resources SET
			type = COALESCE($1, type),
			available = COALESCE($2, available),
			total = COALESCE($3, total),
			location = COALESCE($4, location)
		WHERE id = $5
		RETURNING ` + resourceColumns + `;
	`
	resource, err := scanResource(r.db.QueryRow(ctx, query,
		patch.Type,
		patch.Available,
		patch.Total,
		patch.Location,
		id,
	))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to update resource %s", id), err)
	}
	return resource, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1;`, id)
	if err != nil {
		return mapError("failed to delete resource", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("resource with id %s not found for delete: %w", id, models.ErrNotFound)
	}
	return nil
}

// Reserve атомарно уменьшает available на n, если хватает свободных единиц
func (r *ResourceRepository) Reserve(ctx context.Context, resourceType string, n int) (*models.Resource, error) {
	query := `
		UPDATE resources SET available = available - $2
		WHERE type = $1 AND available >= $2
		RETURNING ` + resourceColumns + `;
	`
	return r.adjust(ctx, "reserve", query, resourceType, n)
}

// Release атомарно возвращает n единиц, не превышая total
func (r *ResourceRepository) Release(ctx context.Context, resourceType string, n int) (*models.Resource, error) {
	query := `
		UPDATE resources SET available = available + $2
		WHERE type = $1 AND available + $2 <= total
		RETURNING ` + resourceColumns + `;
	`
	return r.adjust(ctx, "release", query, resourceType, n)
}

func (r *ResourceRepository) adjust(ctx context.Context, op, query, resourceType string, n int) (*models.Resource, error) {
	resource, err := scanResource(r.db.QueryRow(ctx, query, resourceType, n))
	if err == nil {
		return resource, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(op, err)
	}

	// Условие не выполнилось: отличаем отсутствие типа от нехватки единиц
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resources WHERE type = $1);`, resourceType).Scan(&exists); err != nil {
		return nil, mapError(op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: resource type %q: %w", op, resourceType, models.ErrNotFound)
	}
	return nil, fmt.Errorf("%s: %d units of %q: %w", op, n, resourceType, models.ErrInsufficientResources)
}
