package models

import "time"

// User represents a registered user.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	GroupID      *int64    `json:"groupId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GroupMember is the redacted user shape embedded in group listings.
type GroupMember struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Spendings []Spending `json:"spendings"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued on successful login.
type LoginResponse struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}
