package domain

import "time"

// User is an API consumer identified by a unique username.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose the hash in JSON responses
	CreatedAt    time.Time `json:"createdAt"`
}
