package usecase

import (
	"catalogapi/internal/entity"
	"context"
	"errors"
)

type AddBookInput struct {
	Title     string
	Author    string
	Published int
	Genres    []string
}

// AddBook creates a book for the current user. The author is looked up by
// name and created when absent; a missing author is a normal branch, not an
// error. On success the expanded book is returned and a book_added event is
// published.
//
// The author and book inserts are two separate writes. A failure between
// them can leave an author with zero books; cmd/sweep reclaims those.
func (c *Catalog) AddBook(ctx context.Context, current *entity.User, in AddBookInput) (entity.BookWithAuthor, error) {
	if current == nil {
		return entity.BookWithAuthor{}, ErrNotAuthenticated
	}

	author, err := c.authors.GetByName(ctx, in.Author)
	if errors.Is(err, ErrNotFound) {
		author = entity.Author{Name: in.Author}
		err = c.authors.Create(ctx, &author)
	}
	if err != nil {
		return entity.BookWithAuthor{}, NewValidationError(err.Error(), addBookArgs(in))
	}

	book := entity.Book{
		Title:     in.Title,
		Published: in.Published,
		Genres:    in.Genres,
		AuthorID:  author.ID,
	}
	if err := c.books.Create(ctx, &book); err != nil {
		return entity.BookWithAuthor{}, NewValidationError(err.Error(), addBookArgs(in))
	}

	saved := entity.BookWithAuthor{
		ID:        book.ID,
		Title:     book.Title,
		Published: book.Published,
		Genres:    book.Genres,
		Author:    author,
	}
	c.bus.Publish(TopicBookAdded, saved)
	return saved, nil
}

func addBookArgs(in AddBookInput) map[string]any {
	return map[string]any{
		"title":     in.Title,
		"author":    in.Author,
		"published": in.Published,
		"genres":    in.Genres,
	}
}

// EditAuthor sets the birth year of the named author. Editing an author that
// does not exist returns (nil, nil): a soft miss, distinct from the
// authentication and validation error paths.
func (c *Catalog) EditAuthor(ctx context.Context, current *entity.User, name string, setBornTo int) (*entity.Author, error) {
	if current == nil {
		return nil, ErrNotAuthenticated
	}

	author, err := c.authors.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	author.Born = &setBornTo
	if err := c.authors.Update(ctx, &author); err != nil {
		return nil, NewValidationError(err.Error(), map[string]any{
			"name":      name,
			"setBornTo": setBornTo,
		})
	}
	return &author, nil
}

type CreateUserInput struct {
	Username      string
	FavoriteGenre string
	// PasswordHash is produced by the caller; the catalog never sees the
	// plaintext credential.
	PasswordHash string
}

// CreateUser registers a new user. No authentication required.
func (c *Catalog) CreateUser(ctx context.Context, in CreateUserInput) (entity.User, error) {
	user := entity.User{
		Username:      in.Username,
		FavoriteGenre: in.FavoriteGenre,
		PasswordHash:  in.PasswordHash,
	}
	if err := c.users.Create(ctx, &user); err != nil {
		return entity.User{}, NewValidationError("creating the user failed: "+err.Error(), map[string]any{
			"username":      in.Username,
			"favoriteGenre": in.FavoriteGenre,
		})
	}
	return user, nil
}
