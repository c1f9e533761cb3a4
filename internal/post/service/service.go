package service

import (
	"context"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	activityservice "github.com/socialnet/api/internal/activity/service"
	commoncrypto "github.com/socialnet/api/internal/common/crypto"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/observability/metrics"
	"github.com/socialnet/api/internal/post/domain"
	"github.com/socialnet/api/internal/post/repository"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

type PostService struct {
	repo        repository.Repository
	idGenerator commoncrypto.IDGenerator
	activity    activityservice.Recorder
	log         *logger.Logger
}

func NewPostService(repo repository.Repository, idGenerator commoncrypto.IDGenerator, activity activityservice.Recorder, log *logger.Logger) *PostService {
	return &PostService{repo: repo, idGenerator: idGenerator, activity: activity, log: log}
}

func (s *PostService) Create(ctx context.Context, author userdomain.User, text string) (domain.Post, error) {
	if text == "" {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": author.ID,
			"action":  "create_post_without_text",
		}).Warn("post rejected: empty text")
		if err := s.activity.Record(ctx, activitydomain.Entry{
			Action: "tried to add post without text",
			UserID: activityservice.Ref(author.ID),
		}); err != nil {
			return domain.Post{}, commonerrors.ErrDatabaseError.WithCause(err)
		}
		return domain.Post{}, ErrTextRequired
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "create_post_id_failed"}).Errorf("post id generation failed: %v", err)
		return domain.Post{}, commonerrors.ErrInternalError.WithCause(err)
	}

	post, err := s.repo.Create(ctx, domain.Post{UUID: id, AuthorID: author.ID, Text: text})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": author.ID,
			"action":  "create_post_failed",
		}).Errorf("create post failed: %v", err)
		return domain.Post{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.PostsCreated.Inc()
	if err := s.activity.Record(ctx, activitydomain.Entry{
		Action: "new post added",
		UserID: activityservice.Ref(author.ID),
		PostID: activityservice.Ref(post.ID),
	}); err != nil {
		return domain.Post{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": author.ID,
		"post_id": post.ID,
		"action":  "create_post_success",
	}).Info("post created")
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "list_posts_failed"}).Errorf("list posts failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return posts, nil
}
