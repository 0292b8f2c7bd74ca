package models

import "time"

// Task priorities accepted by the API. An empty Priority means "unset".
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidPriority reports whether p is empty or one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NormalizeCompleted converts a raw "completed" value from a request body into
// the stored boolean. Only boolean true and the exact string "Yes" count as
// true; every other value, including "yes" and numbers, normalizes to false.
func NormalizeCompleted(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "Yes"
	}
	return false
}
