package domain

import "time"

type Post struct {
	ID        int64
	UUID      string
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}
