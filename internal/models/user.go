package models

import "time"

type User struct {
	ID        int64
	Firstname string
	Lastname  string
	Email     string
	CreatedAt time.Time
}

// UserStats counts the tasks owned by a single user.
type UserStats struct {
	User       *User
	Total      int64
	Open       int64
	InProgress int64
	Done       int64
	Overdue    int64
}
