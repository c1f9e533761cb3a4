package http

import (
	"context"
	"net/http"

	"github.com/socialnet/api/internal/common/constants"
	commonhttp "github.com/socialnet/api/internal/common/http"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (userdomain.User, error)
}

type contextKey string

const userKey contextKey = "auth_user"

// RequireUser rejects the request unless X-Api-Key resolves to a user, which is then stored in the context.
func RequireUser(auth Authenticator, errs *commonhttp.ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Context(), r.Header.Get(constants.APIKeyHeader))
			if err != nil {
				errs.HandleError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(userdomain.User)
	return user, ok
}
