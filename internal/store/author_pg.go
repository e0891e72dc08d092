package store

import (
	"context"
	"errors"

	"catalogapi/internal/entity"
	"catalogapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func (r *AuthorPG) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM authors`).Scan(&count)
	return count, err
}

// List computes each author's book count from the live books table; the
// count is never stored.
func (r *AuthorPG) List(ctx context.Context) ([]entity.AuthorWithCount, error) {
	const query = `
	SELECT a.id, a.name, a.born, a.created_at, a.updated_at, count(b.id)
	FROM authors a
	LEFT JOIN books b ON b.author_id = a.id
	GROUP BY a.id
	ORDER BY a.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []entity.AuthorWithCount
	for rows.Next() {
		var a entity.AuthorWithCount
		if err := rows.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt, &a.BookCount); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *AuthorPG) GetByName(ctx context.Context, name string) (entity.Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors
	WHERE name = $1
	LIMIT 1
	`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, name).Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Author{}, usecase.ErrNotFound
		}
		return entity.Author{}, err
	}
	return a, nil
}

func (r *AuthorPG) GetByID(ctx context.Context, id string) (entity.Author, error) {
	const query = `
	SELECT id, name, born, created_at, updated_at
	FROM authors WHERE id = $1 LIMIT 1
	`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Author{}, usecase.ErrNotFound
		}
		return entity.Author{}, err
	}
	return a, nil
}

// Create inserts the author, or returns the existing row when the name is
// already taken. Two concurrent creates for the same name converge on one
// record.
func (r *AuthorPG) Create(ctx context.Context, a *entity.Author) error {
	const query = `
	INSERT INTO authors (id, name, born)
	VALUES (gen_random_uuid(), $1, $2)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id, name, born, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, a.Name, a.Born).Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AuthorPG) Update(ctx context.Context, a *entity.Author) error {
	const query = `
	UPDATE authors
	SET born = $2, updated_at = now()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, a.ID, a.Born).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return err
}
