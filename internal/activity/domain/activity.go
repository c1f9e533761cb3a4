package domain

import (
	"time"

	"github.com/socialnet/api/internal/common/constants"
)

// Entry is an append-only audit record. UserID and PostID are nil when the action has no actor or target.
type Entry struct {
	ID        int64
	UserID    *int64
	PostID    *int64
	Action    string
	CreatedAt time.Time
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, s, time.UTC)
}
