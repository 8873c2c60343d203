package model

import "github.com/google/uuid"

// CachedUser is the local copy of a user owned by the identity service.
type CachedUser struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	FullName string    `json:"full_name" db:"full_name"`
}

type UserAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

func (u CachedUser) AsAuthor() UserAuthor {
	return UserAuthor{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
	}
}
