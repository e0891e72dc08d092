package entity

import "time"

// Book references its author by id. Read paths that return books expand the
// reference into the full Author record.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Published int       `json:"published"`
	Genres    []string  `json:"genres"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookWithAuthor is the expanded payload shape for book reads and
// book-added notifications.
type BookWithAuthor struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Published int      `json:"published"`
	Genres    []string `json:"genres"`
	Author    Author   `json:"author"`
}

// HasGenre reports whether genre is a member of the book's genre set.
func (b Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
