package store

import (
	"context"
	"errors"

	"catalogapi/internal/entity"
	"catalogapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

const uniqueViolation = "23505"

func (r *UserPG) Create(ctx context.Context, user *entity.User) error {
	const query = `
	INSERT INTO users (id, username, favorite_genre, password_hash)
	VALUES (gen_random_uuid(), $1, NULLIF($2, ''), $3)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Username, user.FavoriteGenre, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return usecase.ErrAlreadyExists
	}
	return err
}

func (r *UserPG) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	const query = `
	SELECT id, username, COALESCE(favorite_genre, ''), password_hash, created_at, updated_at
	FROM users
	WHERE username = $1
	LIMIT 1
	`
	var user entity.User
	err := r.db.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.FavoriteGenre, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return user, nil
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	const query = `
	SELECT id, username, COALESCE(favorite_genre, ''), password_hash, created_at, updated_at
	FROM users WHERE id = $1 LIMIT 1
	`
	var user entity.User
	err := r.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.FavoriteGenre, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return user, nil
}
