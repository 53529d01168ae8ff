package models

type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the in-memory view of the persisted auth triple. A session with
// an empty token is treated as logged out regardless of the other fields.
type Session struct {
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}
