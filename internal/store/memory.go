package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"catalogapi/internal/entity"
	"catalogapi/internal/usecase"

	"github.com/google/uuid"
)

// Memory is an in-memory implementation of the three repositories. It backs
// the unit tests and runs the API without a database (STORE=memory).
type Memory struct {
	mu      sync.RWMutex
	authors map[string]entity.Author // by id
	books   map[string]entity.Book   // by id
	users   map[string]entity.User   // by id
}

func NewMemory() *Memory {
	return &Memory{
		authors: make(map[string]entity.Author),
		books:   make(map[string]entity.Book),
		users:   make(map[string]entity.User),
	}
}

func (m *Memory) AuthorRepo() usecase.AuthorRepository { return memAuthors{m} }
func (m *Memory) BookRepo() usecase.BookRepository     { return memBooks{m} }
func (m *Memory) UserRepo() usecase.UserRepository     { return memUsers{m} }

type memAuthors struct{ *Memory }

func (m memAuthors) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.authors), nil
}

func (m memAuthors) List(_ context.Context) ([]entity.AuthorWithCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	authors := make([]entity.AuthorWithCount, 0, len(m.authors))
	for _, a := range m.authors {
		withCount := entity.AuthorWithCount{Author: a}
		for _, b := range m.books {
			if b.AuthorID == a.ID {
				withCount.BookCount++
			}
		}
		authors = append(authors, withCount)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })
	return authors, nil
}

func (m memAuthors) GetByName(_ context.Context, name string) (entity.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.authors {
		if a.Name == name {
			return a, nil
		}
	}
	return entity.Author{}, usecase.ErrNotFound
}

func (m memAuthors) GetByID(_ context.Context, id string) (entity.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.authors[id]; ok {
		return a, nil
	}
	return entity.Author{}, usecase.ErrNotFound
}

func (m memAuthors) Create(_ context.Context, a *entity.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.authors {
		if existing.Name == a.Name {
			*a = existing
			return nil
		}
	}
	now := time.Now()
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.authors[a.ID] = *a
	return nil
}

func (m memAuthors) Update(_ context.Context, a *entity.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.authors[a.ID]; !ok {
		return usecase.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	m.authors[a.ID] = *a
	return nil
}

type memBooks struct{ *Memory }

func (m memBooks) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books), nil
}

func (m memBooks) List(_ context.Context, q usecase.BookQuery) ([]entity.BookWithAuthor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	books := []entity.BookWithAuthor{}
	for _, b := range m.books {
		author := m.authors[b.AuthorID]
		if q.AuthorName != "" && author.Name != q.AuthorName {
			continue
		}
		if q.Genre != "" && !b.HasGenre(q.Genre) {
			continue
		}
		books = append(books, entity.BookWithAuthor{
			ID:        b.ID,
			Title:     b.Title,
			Published: b.Published,
			Genres:    b.Genres,
			Author:    author,
		})
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

func (m memBooks) Create(_ context.Context, b *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.authors[b.AuthorID]; !ok {
		return usecase.ErrNotFound
	}
	now := time.Now()
	b.ID = uuid.New().String()
	b.CreatedAt = now
	b.UpdatedAt = now
	m.books[b.ID] = *b
	return nil
}

type memUsers struct{ *Memory }

func (m memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return usecase.ErrAlreadyExists
		}
	}
	now := time.Now()
	u.ID = uuid.New().String()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = *u
	return nil
}

func (m memUsers) GetByUsername(_ context.Context, username string) (entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.User{}, usecase.ErrNotFound
}

func (m memUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return entity.User{}, usecase.ErrNotFound
}
