package model

// Category groups a user's workouts. It always belongs to exactly one user.
type Category struct {
	Base
	UserID int    `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`
}
