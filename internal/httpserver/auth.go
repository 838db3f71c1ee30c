// internal/httpserver/auth.go
//
// Guest identity. There are no accounts: POST /auth/guest signs a JWT that
// carries a display name, and optional auth puts that name on new rounds so
// it lands on the leaderboard without a prompt.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const maxNameLen = 24

// guest is placed into request context by auth middleware.
type guest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ctxGuestKey is the context key type for storing *guest.
type ctxGuestKey struct{}

func guestFrom(ctx context.Context) *guest {
	g, _ := ctx.Value(ctxGuestKey{}).(*guest)
	return g
}

type guestReq struct {
	Name string `json:"name"`
}

// mountAuthRoutes registers /auth/guest, /auth/logout and /auth/me.
func (s *Server) mountAuthRoutes(r chi.Router) {
	r.Post("/auth/guest", s.handleGuest)
	r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.clearAuthCookie(w)
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(guestFrom(r.Context()))
	})
}

// handleGuest validates the name, signs a token and sets the auth cookie.
func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	var body guestReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	name, err := normalizeName(body.Name)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	g := &guest{ID: genID(), Name: name}
	tok, exp, err := s.signJWT(g)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, tok, exp)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": g.ID, "name": g.Name, "token": tok})
}

// normalizeName trims and checks a display name. Empty is allowed by callers
// that fall back to the default leaderboard name; here it is an error.
func normalizeName(n string) (string, error) {
	n = strings.TrimSpace(n)
	if n == "" || len(n) > maxNameLen {
		return "", errors.New("name must be 1–24 chars")
	}
	for _, r := range n {
		if !(r == '_' || r == ' ' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "", errors.New("name: letters, numbers, space, dash, underscore only")
		}
	}
	return n, nil
}

// withOptionalAuth decorates requests with the guest if a valid JWT is present.
// It never 401s; used for routes where anonymous play is allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g, err := s.parseToken(bearerOrCookie(r, s.cfg.CookieName)); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxGuestKey{}, g))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects the guest into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerOrCookie(r, s.cfg.CookieName)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			g, err := s.parseToken(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxGuestKey{}, g)))
		})
	}
}

func (s *Server) parseToken(tokenStr string) (*guest, error) {
	if tokenStr == "" {
		return nil, errors.New("no token")
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	id, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if id == "" || name == "" {
		return nil, errors.New("invalid token")
	}
	return &guest{ID: id, Name: name}, nil
}

// signJWT creates an HS256 JWT with sub/name and a configurable expiry.
func (s *Server) signJWT(g *guest) (string, time.Time, error) {
	days := s.cfg.JWTExpiresDays
	if days <= 0 {
		days = 14
	}
	now := s.now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  g.ID,
		"name": g.Name,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// setAuthCookie writes the auth token cookie with appropriate security attributes.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, s.cookie(token, func(c *http.Cookie) { c.Expires = exp }))
}

// clearAuthCookie deletes the auth token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", func(c *http.Cookie) { c.MaxAge = -1 }))
}

func (s *Server) cookie(value string, opt func(*http.Cookie)) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	c := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
	}
	opt(c)
	return c
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func bearerOrCookie(r *http.Request, cookieName string) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
