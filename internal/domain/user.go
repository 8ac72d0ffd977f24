package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Money     int       `json:"money"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SimpleUser is the reduced identity embedded in Pokémon, trade and
// history payloads.
type SimpleUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u User) Simple() SimpleUser {
	return SimpleUser{
		ID:       u.ID,
		Username: u.Username,
	}
}
