// Package session tracks browsing sessions backed by Redis. Its main job in
// the storefront is giving guests a stable id so their cart survives
// between requests without an account.
//
//	r.Use(session.Middleware(session.DefaultOptions(), cacheClient))
//
//	sess := session.FromCtx(r)
//	cart := registry.Get(sess.ID())
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/crypt"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// Header lets API clients carry a session without cookies.
const Header = "X-Session-ID"

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "vastra_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	store   *cache.Cache
	changed bool
}

func redisKey(id string) string { return "vastra:session:" + id }

// Detached returns a session with a fixed id and no backing store, for
// call sites where the middleware has not run.
func Detached(id string) *Session {
	return &Session{id: id, data: map[string]interface{}{}, opts: DefaultOptions()}
}

// Inject returns a request whose context carries sess, the same way the
// middleware would.
func Inject(r *http.Request, sess *Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess))
}

// Set stores a value under key in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Invalidate destroys the session data, for sign-out.
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Save persists the session to Redis and writes the cookie to the response.
func (s *Session) Save(ctx context.Context, w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	// Session data is sealed before it reaches Redis: a leaked dump of the
	// cache exposes ciphertext, not carts and addresses.
	sealed, err := crypt.EncryptJSON(s.data)
	if err != nil {
		return fmt.Errorf("session: seal: %w", err)
	}

	if err := s.store.Set(ctx, redisKey(s.id), sealed, s.opts.TTL); err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// Middleware loads (or creates) the session for every request and injects it
// into the request context. The id is taken from the cookie, falling back
// to the X-Session-ID header for cookie-less API clients.
func Middleware(opts Options, store *cache.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, store: store, data: map[string]interface{}{}}

			switch {
			case cookieID(r, opts.CookieName) != "":
				sess.id = cookieID(r, opts.CookieName)
			case r.Header.Get(Header) != "":
				sess.id = r.Header.Get(Header)
			default:
				sess.id = uuid.NewString()
			}

			var sealed string
			if store.Get(r.Context(), redisKey(sess.id), &sealed) {
				var data map[string]interface{}
				if err := crypt.DecryptJSON(sealed, &data); err != nil {
					// Wrong or rotated APP_KEY: start the session fresh.
					logger.Warn("session: unseal failed", "error", err)
				} else {
					sess.data = data
				}
			}

			w.Header().Set(Header, sess.id)
			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context.
// Returns an empty (unsaved) session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{id: uuid.NewString(), data: map[string]interface{}{}, opts: DefaultOptions()}
}

func cookieID(r *http.Request, name string) string {
	if cookie, err := r.Cookie(name); err == nil {
		return cookie.Value
	}
	return ""
}
