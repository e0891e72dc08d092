package store

import (
	"context"

	"catalogapi/internal/entity"
	"catalogapi/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&count)
	return count, err
}

// List returns books matching the filters, author expanded in every filter
// combination. An empty filter field matches everything.
func (r *BookPG) List(ctx context.Context, q usecase.BookQuery) ([]entity.BookWithAuthor, error) {
	const query = `
	SELECT b.id, b.title, b.published, b.genres,
	       a.id, a.name, a.born, a.created_at, a.updated_at
	FROM books b
	JOIN authors a ON a.id = b.author_id
	WHERE ($1 = '' OR a.name = $1)
	AND ($2 = '' OR $2 = ANY(b.genres))
	ORDER BY b.title
	`
	rows, err := r.db.Query(ctx, query, q.AuthorName, q.Genre)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []entity.BookWithAuthor{}
	for rows.Next() {
		var b entity.BookWithAuthor
		if err := rows.Scan(&b.ID, &b.Title, &b.Published, &b.Genres,
			&b.Author.ID, &b.Author.Name, &b.Author.Born, &b.Author.CreatedAt, &b.Author.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, published, genres, author_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, b.Title, b.Published, b.Genres, b.AuthorID).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}
