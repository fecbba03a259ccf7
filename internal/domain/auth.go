package domain

import "time"

// Session marks a logged-in user. A client scope holds at most one.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoticeLevel selects toast styling.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message shown once in the toast area.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
