package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service"
)

const userColumns = `id, name, email, password_hash, role, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var role string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

// Create добавляет пользователя. Повторный email дает ErrConflict
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapError("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to get user %s", id), err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email))
	if err != nil {
		return nil, mapError("failed to get user by email", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC;`)
	if err != nil {
		return nil, mapError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, mapError("failed to scan user row", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("error list iteration", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, mapError("failed to count users", err)
	}
	return count, nil
}

// ExistsWithRole проверяет, есть ли хотя бы один пользователь с ролью
func (r *UserRepository) ExistsWithRole(ctx context.Context, role models.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1);`, string(role)).Scan(&exists)
	if err != nil {
		return false, mapError("failed to check user role", err)
	}
	return exists, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET role = $1 WHERE id = $2
		RETURNING `+userColumns+`;
	`, string(role), id))
	if err != nil {
		return nil, mapError(fmt.Sprintf("failed to update role of user %s", id), err)
	}
	return user, nil
}

// Delete удаляет пользователя. Инциденты сохраняют reported_by
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return mapError("failed to delete user", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user with id %s not found for delete: %w", id, models.ErrNotFound)
	}
	return nil
}
