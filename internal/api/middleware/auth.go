package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
)

const msgUnauthorized = "Please sign in to continue"

type usernameKey struct{}

// WithUsername кладет имя администратора в контекст
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// GetUsername достает имя администратора из контекста
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey{}).(string)
	return username, ok && username != ""
}

// RequireAdmin пропускает только запросы с действующей cookie-сессией
func RequireAdmin(verifier SessionVerifier, cookieName string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				log.Warn("%s %s - Missing admin session", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			username, err := verifier.Verify(cookie.Value)
			if err != nil {
				log.Warn("%s %s - Invalid admin session: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}
