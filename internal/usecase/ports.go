package usecase

import (
	"catalogapi/internal/entity"
	"context"
)

// BookQuery carries the optional allBooks filters. Empty fields match
// everything; both set means author AND genre membership.
type BookQuery struct {
	AuthorName string
	Genre      string
}

// AuthorRepository defines the contract for author storage.
type AuthorRepository interface {
	Count(ctx context.Context) (int, error)
	// List returns every author with its live book count.
	List(ctx context.Context) ([]entity.AuthorWithCount, error)
	GetByName(ctx context.Context, name string) (entity.Author, error)
	GetByID(ctx context.Context, id string) (entity.Author, error)
	// Create is idempotent on name: creating an author whose name already
	// exists returns the existing record instead of failing.
	Create(ctx context.Context, a *entity.Author) error
	Update(ctx context.Context, a *entity.Author) error
}

// BookRepository defines the contract for book storage. List and Create
// return books with the author reference already expanded.
type BookRepository interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, q BookQuery) ([]entity.BookWithAuthor, error)
	Create(ctx context.Context, b *entity.Book) error
}

// UserRepository defines the contract for user storage.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (entity.User, error)
	GetByID(ctx context.Context, id string) (entity.User, error)
}

// Publisher is the notification side of the catalog: successful writes are
// announced to whoever is listening.
type Publisher interface {
	Publish(topic string, payload any)
}
