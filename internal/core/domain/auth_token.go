package domain

import "time"

// AuthToken is a persisted bearer token grant. The ID doubles as the JWT "jti"
// claim, so deleting the row revokes every JWT carrying it.
type AuthToken struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
