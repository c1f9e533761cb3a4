package domain

import "time"

type Like struct {
	ID        int64
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}

type Outcome string

const (
	OutcomeLiked   Outcome = "liked"
	OutcomeUnliked Outcome = "unliked"
)

// ToggleResult carries the created Like when Outcome is OutcomeLiked.
type ToggleResult struct {
	Outcome Outcome
	Like    Like
}
