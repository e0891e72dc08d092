package entity

import "time"

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	FavoriteGenre string    `json:"favorite_genre,omitempty"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
