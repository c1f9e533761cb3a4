package service

import (
	"context"
	"errors"
	"fmt"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	activityservice "github.com/socialnet/api/internal/activity/service"
	"github.com/socialnet/api/internal/common/cache"
	"github.com/socialnet/api/internal/common/db"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/validation"
	"github.com/socialnet/api/internal/like/domain"
	"github.com/socialnet/api/internal/like/repository"
	"github.com/socialnet/api/internal/observability/metrics"
	postdomain "github.com/socialnet/api/internal/post/domain"
	postrepo "github.com/socialnet/api/internal/post/repository"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

type PostLookup interface {
	FindByUUID(ctx context.Context, uuid string) (postdomain.Post, error)
}

type LikeService struct {
	repo     repository.Repository
	posts    PostLookup
	activity activityservice.Recorder
	stats    cache.LikeStatsCache
	retry    db.RetryConfig
	log      *logger.Logger
}

func NewLikeService(
	repo repository.Repository,
	posts PostLookup,
	activity activityservice.Recorder,
	stats cache.LikeStatsCache,
	log *logger.Logger,
) *LikeService {
	return &LikeService{
		repo:     repo,
		posts:    posts,
		activity: activity,
		stats:    stats,
		retry:    db.DefaultRetryConfig,
		log:      log,
	}
}

func (s *LikeService) Toggle(ctx context.Context, user userdomain.User, postUUID string) (domain.ToggleResult, error) {
	userRef := activityservice.Ref(user.ID)

	if postUUID == "" {
		s.log.WithFields(ctx, logger.Fields{"user_id": user.ID, "action": "like_without_uuid"}).Warn("like rejected: empty uuid")
		if err := s.activity.Record(ctx, activitydomain.Entry{Action: "tried to like post without uuid", UserID: userRef}); err != nil {
			return domain.ToggleResult{}, commonerrors.ErrDatabaseError.WithCause(err)
		}
		return domain.ToggleResult{}, ErrUUIDRequired
	}

	post, err := s.resolvePost(ctx, postUUID)
	if errors.Is(err, postrepo.ErrPostNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":   user.ID,
			"post_uuid": postUUID,
			"action":    "like_unknown_post",
		}).Warn("like rejected: unknown post")
		if err := s.activity.Record(ctx, activitydomain.Entry{Action: "tried to like not existing post: " + postUUID, UserID: userRef}); err != nil {
			return domain.ToggleResult{}, commonerrors.ErrDatabaseError.WithCause(err)
		}
		return domain.ToggleResult{}, ErrPostNotFound.WithMessage(fmt.Sprintf("post %s not found", postUUID))
	}
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"post_uuid": postUUID, "action": "like_lookup_failed"}).Errorf("post lookup failed: %v", err)
		return domain.ToggleResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	var result domain.ToggleResult
	err = db.RetryWithBackoff(ctx, s.log, s.retry, func() error {
		var toggleErr error
		result, toggleErr = s.repo.Toggle(ctx, user.ID, post.ID)
		return toggleErr
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": user.ID,
			"post_id": post.ID,
			"action":  "like_toggle_failed",
		}).Errorf("toggle failed: %v", err)
		return domain.ToggleResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.LikesToggled.WithLabelValues(string(result.Outcome)).Inc()
	if err := s.stats.Invalidate(ctx, post.ID); err != nil {
		s.log.WithFields(ctx, logger.Fields{"post_id": post.ID, "action": "like_stats_invalidate_failed"}).Warnf("cache invalidation failed: %v", err)
	}

	action := "liked post"
	if result.Outcome == domain.OutcomeUnliked {
		action = "unliked post"
	}
	if err := s.activity.Record(ctx, activitydomain.Entry{Action: action, UserID: userRef, PostID: activityservice.Ref(post.ID)}); err != nil {
		return domain.ToggleResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": user.ID,
		"post_id": post.ID,
		"outcome": string(result.Outcome),
		"action":  "like_toggled",
	}).Info(action)
	return result, nil
}

// resolvePost treats malformed identifiers as unknown posts.
func (s *LikeService) resolvePost(ctx context.Context, postUUID string) (postdomain.Post, error) {
	canonical, ok := validation.CanonicalUUID(postUUID)
	if !ok {
		return postdomain.Post{}, postrepo.ErrPostNotFound
	}
	return s.posts.FindByUUID(ctx, canonical)
}
