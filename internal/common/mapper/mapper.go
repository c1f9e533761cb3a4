package mapper

import (
	"time"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/common/constants"
	"github.com/socialnet/api/internal/common/dto"
	likedomain "github.com/socialnet/api/internal/like/domain"
	postdomain "github.com/socialnet/api/internal/post/domain"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

func splitTimestamp(t time.Time) (string, string) {
	t = t.UTC()
	return t.Format(constants.DateLayout), t.Format(constants.TimeLayout)
}

// UserToDTO never exposes the password hash.
func UserToDTO(user userdomain.User) dto.User {
	return dto.User{
		ID:       user.ID,
		Name:     user.Name,
		Surname:  user.Surname,
		Username: user.Username,
		UUID:     user.UUID,
	}
}

func UsersToDTO(users []userdomain.User) []dto.User {
	result := make([]dto.User, len(users))
	for i, u := range users {
		result[i] = UserToDTO(u)
	}
	return result
}

func PostToDTO(post postdomain.Post) dto.Post {
	date, clock := splitTimestamp(post.CreatedAt)
	return dto.Post{
		ID:       post.ID,
		AuthorID: post.AuthorID,
		Text:     post.Text,
		UUID:     post.UUID,
		Date:     date,
		Time:     clock,
	}
}

func PostsToDTO(posts []postdomain.Post) []dto.Post {
	result := make([]dto.Post, len(posts))
	for i, p := range posts {
		result[i] = PostToDTO(p)
	}
	return result
}

func LikeToDTO(like likedomain.Like) dto.Like {
	date, clock := splitTimestamp(like.CreatedAt)
	return dto.Like{
		UserID: like.UserID,
		PostID: like.PostID,
		Date:   date,
		Time:   clock,
	}
}

func ActivityToDTO(entry activitydomain.Entry) dto.Activity {
	date, clock := splitTimestamp(entry.CreatedAt)
	return dto.Activity{
		UserID: entry.UserID,
		PostID: entry.PostID,
		Action: entry.Action,
		Date:   date,
		Time:   clock,
	}
}

func ActivitiesToDTO(entries []activitydomain.Entry) []dto.Activity {
	result := make([]dto.Activity, len(entries))
	for i, e := range entries {
		result[i] = ActivityToDTO(e)
	}
	return result
}
