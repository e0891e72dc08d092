package entity

import "time"

type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Born      *int      `json:"born,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorWithCount is an Author plus its derived book count. The count is
// never stored; every read path computes it from the live book set.
type AuthorWithCount struct {
	Author
	BookCount int `json:"book_count"`
}
