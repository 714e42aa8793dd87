package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/rs/xid"
)

// AccessTokenCookie holds the JWT of a logged in browser.
const AccessTokenCookie = "access_token"

type Middleware func(http.Handler) http.Handler

type ctxKey string

const userKey ctxKey = "user"

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated caller or nil for an anonymous request.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// TokenFromRequest takes the token from the access_token cookie, then from a
// "Bearer <token>" Authorization header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}

	return ""
}

// Authenticate puts the caller into the request context. Requests without a
// valid token continue anonymously.
func Authenticate(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := TokenFromRequest(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.GetUserFromToken(r.Context(), tokenString)
			if err != nil {
				logger.FromContext(r.Context()).Debug("токен отклонён", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// LoginRedirectURL is loginURL with the requested path in ?next=.
func LoginRedirectURL(loginURL string, r *http.Request) string {
	return loginURL + "?next=" + url.QueryEscape(r.URL.RequestURI())
}

// RequireAuth sends anonymous callers to the login page before next can run.
func RequireAuth(loginURL string) func(http.HandlerFunc) http.Handler {
	return func(next http.HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFromContext(r.Context()) == nil {
				http.Redirect(w, r, LoginRedirectURL(loginURL, r), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware tags the request with an id and logs it once it is served.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = xid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		rw := newResponseWriter(w, false)

		next.ServeHTTP(rw, r.WithContext(ctx))

		logger.FromContext(ctx).Info("запрос обработан",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
