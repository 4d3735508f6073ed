package middleware

import (
	"net/http"
	"strings"

	"github.com/hoaxify/hoaxify/internal/ctxkeys"
	"github.com/hoaxify/hoaxify/internal/i18n"
	"github.com/hoaxify/hoaxify/internal/service"
)

// AuthMiddleware resolves an optional bearer token and stores the user in
// the request context. Requests without a valid token continue
// unauthenticated; public endpoints must still work, and endpoints that
// merely accept optional authentication (like the user listing's
// exclude-self behavior) still get the token's last-used refresh.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.Authenticate(token)
			if err != nil {
				// Invalid or expired token, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Locale stores the request's negotiated locale in the context.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.Match(r.Header.Get("Accept-Language"))
		ctx := ctxkeys.WithLocale(r.Context(), tag)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
