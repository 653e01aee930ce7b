// Auth routes and middleware, grounded on the root internal/httpserver's
// mountAuthRoutes/requireAuth/withOptionalAuth trio — unchanged in shape,
// pointed at accountstore instead of an inline users table.
package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wordleforge/server/internal/accountstore"
)

type ctxUserKey struct{}

type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type signupReq struct{ Username, Password string }
type loginReq struct{ Username, Password string }

func (s *Server) mountAuthRoutes() {
	if s.accounts == nil {
		unavailable := func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"accounts_unavailable"}`, http.StatusServiceUnavailable)
		}
		s.r.Post("/auth/signup", unavailable)
		s.r.Post("/auth/login", unavailable)
		s.r.Post("/auth/logout", unavailable)
		s.r.Get("/stats/me", unavailable)
		return
	}

	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
		writeJSON(w, http.StatusOK, me)
	})

	s.r.With(s.requireAuth()).Get("/stats/me", func(w http.ResponseWriter, r *http.Request) {
		me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
		a, err := s.accounts.FindByID(me.ID)
		if err != nil {
			http.Error(w, `{"error":"not_found"}`, http.StatusInternalServerError)
			return
		}
		lastGen, err := s.accounts.LastGenerationAt(me.ID)
		if err != nil {
			http.Error(w, `{"error":"stats_unavailable"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":               a.ID,
			"puzzlesGenerated": a.PuzzlesGenerated,
			"optimalCount":     a.OptimalCount,
			"lastGeneratedAt":  lastGen,
		})
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body signupReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	a, err := s.accounts.CreateAccount(genID(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, accountstore.ErrUsernameTaken) {
			http.Error(w, `{"error":"Username taken"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	tok, exp, err := s.signJWT(a.ID, a.Username)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, map[string]any{"id": a.ID, "username": a.Username, "createdAt": a.CreatedAt})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	a, err := s.accounts.FindByUsername(strings.TrimSpace(body.Username))
	if err != nil || !accountstore.CheckPassword(a, body.Password) {
		http.Error(w, `{"error":"Invalid username or password"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := s.signJWT(a.ID, a.Username)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, map[string]any{"id": a.ID, "username": a.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.accounts != nil {
				if tok := bearerOrCookie(r); tok != "" {
					if id, username, ok := s.parseToken(tok); ok {
						if a, err := s.accounts.FindByID(id); err == nil {
							ctx := context.WithValue(r.Context(), ctxUserKey{}, &authUser{ID: a.ID, Username: username})
							r = r.WithContext(ctx)
						}
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerOrCookie(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			id, username, ok := s.parseToken(tokenStr)
			if !ok {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			if _, err := s.accounts.FindByID(id); err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserKey{}, &authUser{ID: id, Username: username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) parseToken(tok string) (id, username string, ok bool) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}
	id, _ = claims["id"].(string)
	username, _ = claims["username"].(string)
	if id == "" || username == "" {
		return "", "", false
	}
	return id, username, true
}

func jwtSecret() string { return getEnv("JWT_SECRET", "dev_secret_change_me") }

func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	days := 14
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}
	exp := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": id, "username": username, "exp": exp.Unix(), "iat": time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(jwtSecret()))
	return ss, exp, err
}

func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	name := getEnv("COOKIE_NAME", "wordleforge_token")
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name: name, Value: token, Path: "/", HttpOnly: true,
		Secure: secure, SameSite: sameSite, Expires: exp,
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	name := getEnv("COOKIE_NAME", "wordleforge_token")
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name: name, Value: "", Path: "/", HttpOnly: true,
		Secure: secure, SameSite: sameSite, MaxAge: -1,
	})
}

func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(getEnv("COOKIE_NAME", "wordleforge_token")); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22-char URL-safe, crypto-random identifier. Uses
// crypto/rand, not the generator's seeded math/rand, since account ids
// must be unguessable rather than reproducible.
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
