package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/tahcohcat/daily-mystery/internal/logger"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"

	valueUserID   = "user_id"
	valueUsername = "username"
)

// Identity is the player as asserted by the fronting identity provider.
type Identity struct {
	UserID   string
	Username string
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by Middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Authenticator resolves the caller from identity headers, falling back to
// the signed session cookie written the last time headers were seen.
type Authenticator struct {
	store      sessions.Store
	cookieName string
}

func New(secret, cookieName string) *Authenticator {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Authenticator{store: store, cookieName: cookieName}
}

// Identify returns the caller of r. When the headers are present the cookie
// is refreshed so that clients which cannot set headers, like a browser
// opening a websocket, are still recognized.
func (a *Authenticator) Identify(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	session, err := a.store.Get(r, a.cookieName)
	if err != nil {
		// a cookie signed with an old secret; start over
		logger.New().WithError(err).Debug("discarding unreadable session cookie")
	}

	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	username := strings.TrimSpace(r.Header.Get(HeaderUsername))
	if userID != "" {
		if username == "" {
			username = userID
		}
		if session != nil {
			session.Values[valueUserID] = userID
			session.Values[valueUsername] = username
			if err := session.Save(r, w); err != nil {
				logger.New().WithError(err).Warn("failed to save session cookie")
			}
		}
		return Identity{UserID: userID, Username: username}, true
	}

	if session == nil {
		return Identity{}, false
	}
	userID, _ = session.Values[valueUserID].(string)
	username, _ = session.Values[valueUsername].(string)
	if userID == "" {
		return Identity{}, false
	}
	if username == "" {
		username = userID
	}
	return Identity{UserID: userID, Username: username}, true
}

// Middleware rejects anonymous requests with 401 and stores the identity in
// the request context otherwise.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.Identify(w, r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
