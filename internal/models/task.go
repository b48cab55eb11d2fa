package models

import "time"

type TaskStatus = string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every accepted status in display order.
var TaskStatuses = []TaskStatus{StatusOpen, StatusInProgress, StatusDone}

func IsValidTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if status == s {
			return true
		}
	}
	return false
}

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	// DueDate is a calendar date formatted as 2006-01-02.
	DueDate   string
	Status    TaskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
