package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Rgonzalez7/elias-portfolio/internal/auth"
	"github.com/Rgonzalez7/elias-portfolio/internal/model"
	"github.com/Rgonzalez7/elias-portfolio/internal/repository"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	OK   bool              `json:"ok"`
	User *model.PublicUser `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	email := repository.NormalizeEmail(req.Email)
	if req.Name == "" || email == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "Missing fields.")
		return
	}

	// Demo semantics: the password is stored as supplied, no hashing.
	user := model.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     email,
		Password:  req.Password,
		Role:      model.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			writeFail(w, http.StatusConflict, "Email already registered.")
			return
		}
		s.log.Error("register failed", "error", err)
		writeFail(w, http.StatusInternalServerError, "Server error.")
		return
	}

	public := user.Public()
	writeJSON(w, http.StatusOK, userResponse{OK: true, User: &public})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	email := repository.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "Missing email/password.")
		return
	}

	user, err := s.store.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeFail(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		s.log.Error("login lookup failed", "error", err)
		writeFail(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		writeFail(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := auth.NewSessionToken(s.cfg.Session.JWTSecret, s.cfg.Session.JWTIssuer, s.cfg.Session.TokenTTL, auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.log.Error("token signing failed", "error", err)
		writeFail(w, http.StatusInternalServerError, "Server error.")
		return
	}

	http.SetCookie(w, s.sessionCookie(token, int(s.cfg.Session.TokenTTL.Seconds())))
	public := user.Public()
	writeJSON(w, http.StatusOK, userResponse{OK: true, User: &public})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, state := s.resolveSession(r)
	if state != sessionOK {
		// Fail open to anonymous: an absent, tampered, expired or orphaned
		// token all read as "no user".
		writeJSON(w, http.StatusOK, userResponse{OK: true, User: nil})
		return
	}
	public := user.Public()
	writeJSON(w, http.StatusOK, userResponse{OK: true, User: &public})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie := s.sessionCookie("", -1)
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// handleDashboard is the data fetch behind the gated prefix. The middleware
// only checked cookie presence; the cryptographic check happens here.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, state := s.resolveSession(r)
	if state != sessionOK {
		writeJSON(w, http.StatusOK, userResponse{OK: true, User: nil})
		return
	}
	public := user.Public()
	writeJSON(w, http.StatusOK, userResponse{OK: true, User: &public})
}

type sessionState int

const (
	sessionAbsent sessionState = iota
	sessionInvalid
	sessionExpired
	sessionOrphaned
	sessionOK
)

// resolveSession classifies the request's session cookie. Callers pick the
// policy; every public endpoint currently maps anything but sessionOK to an
// anonymous user.
func (s *Server) resolveSession(r *http.Request) (model.User, sessionState) {
	cookie, err := r.Cookie(s.cfg.Session.CookieName)
	if err != nil || cookie.Value == "" {
		return model.User{}, sessionAbsent
	}

	claims, err := auth.ParseSessionToken(s.cfg.Session.JWTSecret, cookie.Value)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.User{}, sessionExpired
		}
		return model.User{}, sessionInvalid
	}

	// The token may outlive the record, e.g. after a restart wiped the
	// in-memory store.
	user, err := s.store.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return model.User{}, sessionOrphaned
	}
	return user, sessionOK
}

func (s *Server) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.Environment == "production",
	}
}
