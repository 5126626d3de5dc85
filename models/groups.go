package models

// Group represents a named, password-protected collection of users. The
// password hash is carried for verification only and never serialized.
type Group struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"`
	Users        []GroupMember `json:"users"`
}

type CreateGroupRequest struct {
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type JoinGroupRequest struct {
	UserID   int64  `json:"userId"`
	GroupID  int64  `json:"groupId"`
	Password string `json:"password"`
}

type LeaveGroupRequest struct {
	UserID  int64 `json:"userId"`
	GroupID int64 `json:"groupId"`
}
