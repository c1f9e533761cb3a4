package service

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
	userdomain "github.com/socialnet/api/internal/user/domain"
	userrepo "github.com/socialnet/api/internal/user/repository"
)

type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (userdomain.User, error)
}

type Gate struct {
	tokens *TokenIssuer
	users  UserLookup
	log    *logger.Logger
}

func NewGate(tokens *TokenIssuer, users UserLookup, log *logger.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, log: log}
}

// Authenticate resolves a credential to its user or fails with one of
// ErrTokenRequired, ErrTokenExpired, ErrWrongToken or ErrInvalidUser.
func (g *Gate) Authenticate(ctx context.Context, credential string) (userdomain.User, error) {
	if credential == "" {
		return userdomain.User{}, g.reject(ctx, "token_required", ErrTokenRequired, nil)
	}

	claims, err := g.tokens.ParseToken(credential)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return userdomain.User{}, g.reject(ctx, "token_expired", ErrTokenExpired, err)
		}
		return userdomain.User{}, g.reject(ctx, "wrong_token", ErrWrongToken, err)
	}

	user, err := g.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.User{}, g.reject(ctx, "invalid_user", ErrInvalidUser, nil)
		}
		g.log.WithFields(ctx, logger.Fields{
			"username": claims.Username,
			"action":   "auth_lookup_failed",
		}).Errorf("user lookup failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return user, nil
}

func (g *Gate) reject(ctx context.Context, reason string, err commonerrors.DomainError, cause error) error {
	incrementAuthFailures(reason)
	entry := g.log.WithFields(ctx, logger.Fields{
		"action": "auth_rejected",
		"reason": reason,
	})
	if cause != nil {
		entry.Warnf("credential rejected: %v", cause)
		return err.WithCause(cause)
	}
	entry.Warn("credential rejected")
	return err
}
