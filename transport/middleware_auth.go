package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/eyewear-store/application/user"
	"github.com/muhammadheryan/eyewear-store/constant"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"go.uber.org/zap"
)

// AuthMiddleware validates the bearer token and stores the user ID in the
// request context. Public paths pass without a token, but still get the
// user ID when a valid one is sent.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// internal routes carry the service API key, checked by InternalMiddleware
			if strings.HasPrefix(r.URL.Path, "/internal/") {
				next.ServeHTTP(w, r)
				return
			}
			public := isPublicPath(r.Method, r.URL.Path)

			token, ok := bearerToken(r)
			if !ok {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeErrorRedirect(w, errors.SetCustomError(constant.ErrUnauthorize), "/login")
				return
			}

			userID, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeErrorRedirect(w, errors.SetCustomError(constant.ErrUnauthorize), "/login")
				return
			}

			ctx := utilsContext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are reachable without a token.
func isPublicPath(method, path string) bool {
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}
	switch path {
	case "/login", "/register", "/otp/send", "/otp/verify":
		return true
	}

	if method != http.MethodGet {
		return false
	}
	for _, prefix := range []string{"/products", "/categories", "/education"} {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// AdminMiddleware lets through only users whose profile has the admin role.
// It must run after AuthMiddleware.
func AdminMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utilsContext.GetUserID(r.Context())
			if !ok {
				writeErrorRedirect(w, errors.SetCustomError(constant.ErrUnauthorize), "/login")
				return
			}

			profile, err := userApp.GetProfile(r.Context(), userID)
			if err != nil {
				writeError(w, err)
				return
			}
			if profile.Role != constant.RoleAdmin {
				logger.Info("[AdminMiddleware] non-admin access", zap.String("user_id", userID), zap.String("path", r.URL.Path))
				writeError(w, errors.SetCustomError(constant.ErrForbidden))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
