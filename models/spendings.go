package models

import "time"

// Spending is a dated monetary entry owned by exactly one user.
type Spending struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name,omitempty"`
	Day    time.Time `json:"day"`
	Value  float64   `json:"value"`
	UserID int64     `json:"userId"`
}

// SpendingRequest is the payload for creating or updating a spending. The day
// is received as a string so an unparseable timestamp can be rejected with a
// validation error instead of a decode failure.
type SpendingRequest struct {
	UserID int64   `json:"userId"`
	Day    string  `json:"day"`
	Value  float64 `json:"value"`
	Name   string  `json:"name,omitempty"`
}
