package service

import (
	"context"
	"errors"
	"time"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/common/cache"
	"github.com/socialnet/api/internal/common/clock"
	"github.com/socialnet/api/internal/common/constants"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/validation"
	postdomain "github.com/socialnet/api/internal/post/domain"
	postrepo "github.com/socialnet/api/internal/post/repository"
	userdomain "github.com/socialnet/api/internal/user/domain"
	userrepo "github.com/socialnet/api/internal/user/repository"
)

type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (userdomain.User, error)
}

type PostLookup interface {
	FindByUUID(ctx context.Context, uuid string) (postdomain.Post, error)
}

type ActivityReader interface {
	ListByUser(ctx context.Context, userID int64) ([]activitydomain.Entry, error)
}

type LikeTimes interface {
	CreatedAtBetween(ctx context.Context, postID int64, from, to time.Time) ([]time.Time, error)
}

// LikeRange carries raw query values; empty dates mean today.
type LikeRange struct {
	UUID      string
	StartDate string
	EndDate   string
}

type AnalyticsService struct {
	users    UserLookup
	posts    PostLookup
	activity ActivityReader
	likes    LikeTimes
	stats    cache.LikeStatsCache
	clock    clock.Clock
	log      *logger.Logger
}

func NewAnalyticsService(
	users UserLookup,
	posts PostLookup,
	activity ActivityReader,
	likes LikeTimes,
	stats cache.LikeStatsCache,
	clk clock.Clock,
	log *logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		users:    users,
		posts:    posts,
		activity: activity,
		likes:    likes,
		stats:    stats,
		clock:    clk,
		log:      log,
	}
}

func (s *AnalyticsService) UserStatistics(ctx context.Context, username string) ([]activitydomain.Entry, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{"username": username, "action": "user_statistics_unknown"}).Warn("statistics requested for unknown user")
		return nil, ErrInvalidUsername.WithMessage("invalid username: " + username)
	}
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	entries, err := s.activity.ListByUser(ctx, user.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"user_id": user.ID, "action": "user_statistics_failed"}).Errorf("activity query failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return entries, nil
}

func (s *AnalyticsService) LikeStatistics(ctx context.Context, in LikeRange) (map[string]int64, error) {
	if in.UUID == "" {
		return nil, ErrUUIDRequired
	}

	start, err := s.parseDateOrToday(in.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := s.parseDateOrToday(in.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	post, err := s.resolvePost(ctx, in.UUID)
	if errors.Is(err, postrepo.ErrPostNotFound) {
		return nil, ErrUnknownPost.WithMessage("invalid post uuid: " + in.UUID)
	}
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if end.Before(start) {
		return map[string]int64{}, nil
	}

	startKey := start.Format(constants.DateLayout)
	endKey := end.Format(constants.DateLayout)

	cached, version, err := s.stats.Get(ctx, post.ID, startKey, endKey)
	if err == nil {
		return cached, nil
	}
	cacheable := errors.Is(err, cache.ErrMiss)
	if !cacheable {
		s.log.WithFields(ctx, logger.Fields{"post_id": post.ID, "action": "like_stats_cache_get_failed"}).Warnf("cache read failed: %v", err)
	}

	times, err := s.likes.CreatedAtBetween(ctx, post.ID, start, end.Add(24*time.Hour))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"post_id": post.ID, "action": "like_stats_failed"}).Errorf("like query failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	stats := BucketByDate(times, start, end)
	if !cacheable {
		return stats, nil
	}
	if err := s.stats.Set(ctx, post.ID, version, startKey, endKey, stats); err != nil {
		s.log.WithFields(ctx, logger.Fields{"post_id": post.ID, "action": "like_stats_cache_set_failed"}).Warnf("cache write failed: %v", err)
	}
	return stats, nil
}

func (s *AnalyticsService) parseDateOrToday(value, field string) (time.Time, error) {
	if value == "" {
		return clock.Today(s.clock), nil
	}
	t, err := activitydomain.ParseDate(value)
	if err != nil {
		return time.Time{}, commonerrors.ErrInvalidDate.WithDetails(map[string]any{field: value})
	}
	return t, nil
}

func (s *AnalyticsService) resolvePost(ctx context.Context, uuid string) (postdomain.Post, error) {
	canonical, ok := validation.CanonicalUUID(uuid)
	if !ok {
		return postdomain.Post{}, postrepo.ErrPostNotFound
	}
	return s.posts.FindByUUID(ctx, canonical)
}
