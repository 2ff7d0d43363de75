package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/disaster_response_system/internal/models"
)

// rowScanner покрывает pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// mapError переводит ошибки pgx в ошибки предметной области
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, models.ErrConflict)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
			return fmt.Errorf("%s: %w: %s", op, models.ErrValidation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreFailure, err)
}

// whereBuilder собирает условие WHERE с позиционными параметрами
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// orderByCreated добавляет сортировку по времени создания и LIMIT
func (b *whereBuilder) orderByCreated(opts models.ListOptions) string {
	return b.orderBy("created_at", "id", opts)
}

func (b *whereBuilder) orderBy(column, tieBreaker string, opts models.ListOptions) string {
	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}
	clause := fmt.Sprintf(" ORDER BY %s %s, %s %s", column, direction, tieBreaker, direction)
	if opts.Limit > 0 {
		b.args = append(b.args, opts.Limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(b.args))
	}
	return clause
}
