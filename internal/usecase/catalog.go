package usecase

import (
	"catalogapi/internal/entity"
	"context"
)

// TopicBookAdded is published once per successful book creation with the
// expanded book as payload.
const TopicBookAdded = "book_added"

// Catalog bundles the read and write operations of the library catalog.
// Authorization is decided here: operations that need an identity take the
// resolved current user and reject nil.
type Catalog struct {
	authors AuthorRepository
	books   BookRepository
	users   UserRepository
	bus     Publisher
}

func NewCatalog(authors AuthorRepository, books BookRepository, users UserRepository, bus Publisher) *Catalog {
	return &Catalog{
		authors: authors,
		books:   books,
		users:   users,
		bus:     bus,
	}
}

func (c *Catalog) BookCount(ctx context.Context) (int, error) {
	return c.books.Count(ctx)
}

func (c *Catalog) AuthorCount(ctx context.Context) (int, error) {
	return c.authors.Count(ctx)
}

// AllAuthors lists every author. Book counts are computed by the repository
// from the live book set on every call, never cached.
func (c *Catalog) AllAuthors(ctx context.Context) ([]entity.AuthorWithCount, error) {
	return c.authors.List(ctx)
}

// AllBooks lists books matching the optional author/genre filters, author
// expanded in every filter combination.
func (c *Catalog) AllBooks(ctx context.Context, q BookQuery) ([]entity.BookWithAuthor, error) {
	return c.books.List(ctx, q)
}

// FavoriteBooks lists the books whose genre set contains the current user's
// favorite genre. A user without a favorite genre gets an empty list.
func (c *Catalog) FavoriteBooks(ctx context.Context, current *entity.User) ([]entity.BookWithAuthor, error) {
	if current == nil {
		return nil, ErrNotAuthenticated
	}
	if current.FavoriteGenre == "" {
		return []entity.BookWithAuthor{}, nil
	}
	return c.books.List(ctx, BookQuery{Genre: current.FavoriteGenre})
}
