package service

import (
	"context"
	"errors"
	"fmt"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	activityservice "github.com/socialnet/api/internal/activity/service"
	commoncrypto "github.com/socialnet/api/internal/common/crypto"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/validation"
	"github.com/socialnet/api/internal/observability/metrics"
	"github.com/socialnet/api/internal/user/domain"
	"github.com/socialnet/api/internal/user/repository"
)

type TokenIssuer interface {
	IssueToken(username, reason string) (string, error)
}

// RegisterInput keeps absent fields nil so rejections can echo them as null.
type RegisterInput struct {
	Name     *string `json:"name" validate:"required,min=1,max=50"`
	Surname  *string `json:"surname" validate:"required,min=1,max=50"`
	Username *string `json:"username" validate:"required,min=1,max=50"`
	Password *string `json:"password" validate:"required,min=1,max=72"`
}

type UserService struct {
	repo        repository.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      TokenIssuer
	activity    activityservice.Recorder
	log         *logger.Logger
}

func NewUserService(
	repo repository.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	tokens TokenIssuer,
	activity activityservice.Recorder,
	log *logger.Logger,
) *UserService {
	return &UserService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		tokens:      tokens,
		activity:    activity,
		log:         log,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, error) {
	username := orNone(input.Username)
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if failed := validation.Struct(input); failed != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", failed)
		return "", s.reject(ctx, input)
	}

	_, err := s.repo.FindByUsername(ctx, *input.Username)
	if err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_username_exists",
		}).Warn("register failed: already exists")
		return "", s.reject(ctx, input)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return "", s.internal(ctx, username, "lookup", err)
	}

	hash, err := s.hasher.Hash(*input.Password)
	if err != nil {
		return "", s.internal(ctx, username, "hash", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return "", s.internal(ctx, username, "id_generation", err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		UUID:         id,
		Name:         *input.Name,
		Surname:      *input.Surname,
		Username:     *input.Username,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrUsernameAlreadyExists) {
		return "", s.reject(ctx, input)
	}
	if err != nil {
		return "", s.internal(ctx, username, "create", err)
	}

	metrics.UsersRegistered.Inc()
	if err := s.activity.Record(ctx, activitydomain.Entry{
		Action: "user created successfully: " + user.Username,
		UserID: activityservice.Ref(user.ID),
	}); err != nil {
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	token, err := s.tokens.IssueToken(user.Username, "register")
	if err != nil {
		return "", s.internal(ctx, username, "token", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"action":   "register_success",
	}).Info("user registered")
	return token, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "list_users_failed"}).Errorf("list users failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.activity.Record(ctx, activitydomain.Entry{Action: "users list requested"}); err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return users, nil
}

func (s *UserService) reject(ctx context.Context, input RegisterInput) error {
	if err := s.activity.Record(ctx, activitydomain.Entry{
		Action: "user creation with a failure: " + orNone(input.Username),
	}); err != nil {
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	return ErrUserRejected.
		WithMessage(fmt.Sprintf("cant create user with name %s, surname %s, username %s, password %s",
			orNone(input.Name), orNone(input.Surname), orNone(input.Username), orNone(input.Password))).
		WithDetails(map[string]any{
			"name":     orNull(input.Name),
			"surname":  orNull(input.Surname),
			"username": orNull(input.Username),
			"password": orNull(input.Password),
		})
}

func (s *UserService) internal(ctx context.Context, username, stage string, err error) error {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "register_" + stage + "_failed",
	}).Errorf("register failed: %v", err)
	return commonerrors.ErrInternalError.WithCause(err)
}

func orNone(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}

func orNull(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
