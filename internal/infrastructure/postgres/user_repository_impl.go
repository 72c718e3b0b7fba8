package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, phone, education, role, avatar_id, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Phone, u.Education, u.Role, u.Avatar.ID, u.Avatar.URL, u.Password)

	return row.Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, education, role, avatar_id, avatar_url, created_at
		FROM users
		WHERE id = $1
	`, id)

	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Education, &u.Role,
		&u.Avatar.ID, &u.Avatar.URL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail selects the password hash as well; it backs the login flow.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, education, role, avatar_id, avatar_url, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)

	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Education, &u.Role,
		&u.Avatar.ID, &u.Avatar.URL, &u.Password, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, education, role, avatar_id, avatar_url, created_at
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Education, &u.Role,
			&u.Avatar.ID, &u.Avatar.URL, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
