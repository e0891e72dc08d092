package usecase_test

import (
	"context"
	"errors"

	"catalogapi/internal/entity"
	"catalogapi/internal/usecase"
)

// failingAuthors simulates a store that rejects every write, for exercising
// the validation-error path.
type failingAuthors struct{}

var errStoreRejected = errors.New("unique constraint violated")

func (failingAuthors) Count(context.Context) (int, error) { return 0, errStoreRejected }

func (failingAuthors) List(context.Context) ([]entity.AuthorWithCount, error) {
	return nil, errStoreRejected
}

func (failingAuthors) GetByName(context.Context, string) (entity.Author, error) {
	return entity.Author{}, usecase.ErrNotFound
}

func (failingAuthors) GetByID(context.Context, string) (entity.Author, error) {
	return entity.Author{}, usecase.ErrNotFound
}

func (failingAuthors) Create(context.Context, *entity.Author) error { return errStoreRejected }

func (failingAuthors) Update(context.Context, *entity.Author) error { return errStoreRejected }

func addTestUserStub() *entity.User {
	return &entity.User{ID: "user-1", Username: "alice"}
}
