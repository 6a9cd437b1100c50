package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/flowquote/flowquote/internal/http/respond"
)

// CookieName is the session cookie set on login.
const CookieName = "flowquote_session"

// Authenticate rejects requests without a valid session token and stores the
// caller's business id in the request context. The token is read from the
// Authorization bearer header, falling back to the session cookie.
func Authenticate(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := tokens.Parse(tokenFromRequest(r))
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithBusiness(r.Context(), id)))
		})
	}
}

// Identify stores the caller's business id when the request carries a valid
// session token and lets every request through.
func Identify(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := tokens.Parse(tokenFromRequest(r)); err == nil {
				r = r.WithContext(ContextWithBusiness(r.Context(), id))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards admin routes with a static bearer token. An empty
// configured token disables the routes entirely.
func RequireAdmin(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := bearerToken(r)
			if adminToken == "" || subtle.ConstantTimeCompare([]byte(got), []byte(adminToken)) != 1 {
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionCookie builds the cookie carrying a freshly issued token.
func SessionCookie(r *http.Request, token string, expiresAt time.Time) *http.Cookie {
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteStrictMode
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

func tokenFromRequest(r *http.Request) string {
	if token := bearerToken(r); token != "" {
		return token
	}

	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}

	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}

	return ""
}
