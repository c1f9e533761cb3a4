package service

import (
	"context"
	"errors"
	"sync"

	commoncrypto "github.com/socialnet/api/internal/common/crypto"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
	userrepo "github.com/socialnet/api/internal/user/repository"
)

type LoginService struct {
	users  UserLookup
	hasher commoncrypto.PasswordHasher
	tokens *TokenIssuer
	log    *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewLoginService(users UserLookup, hasher commoncrypto.PasswordHasher, tokens *TokenIssuer, log *logger.Logger) *LoginService {
	return &LoginService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login compares against a throwaway hash for unknown usernames so both failure paths cost one bcrypt comparison.
func (s *LoginService) Login(ctx context.Context, username, password string) (string, error) {
	fields := logger.Fields{"username": username}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, fields).Errorf("login failed: %v", err)
			return "", commonerrors.ErrDatabaseError.WithCause(err)
		}
		_ = s.hasher.Compare(s.placeholderHash(), password)
		incrementAuthFailures("unknown_user")
		s.log.WithFields(ctx, logger.Fields{"username": username, "action": "login_unknown_user"}).Warn("login failed")
		return "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		incrementAuthFailures("wrong_password")
		s.log.WithFields(ctx, logger.Fields{"username": username, "action": "login_wrong_password"}).Warn("login failed")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.Username, "login")
	if err != nil {
		s.log.WithFields(ctx, fields).Errorf("login failed: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{"username": username, "action": "login_success"}).Info("login success")
	return token, nil
}

func (s *LoginService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("placeholder-password")
	})
	return s.dummyHash
}
