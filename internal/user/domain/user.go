package domain

import "time"

type User struct {
	ID           int64
	UUID         string
	Name         string
	Surname      string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
