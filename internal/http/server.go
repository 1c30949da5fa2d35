package http

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rgonzalez7/elias-portfolio/internal/config"
	"github.com/Rgonzalez7/elias-portfolio/internal/feedback"
	"github.com/Rgonzalez7/elias-portfolio/internal/logger"
	"github.com/Rgonzalez7/elias-portfolio/internal/mailer"
	"github.com/Rgonzalez7/elias-portfolio/internal/ratelimit"
	"github.com/Rgonzalez7/elias-portfolio/internal/repository"
)

type Server struct {
	cfg      config.Config
	store    repository.Users
	feedback feedback.Generator
	mailer   *mailer.Mailer
	limiter  *ratelimit.Limiter
	log      *logger.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

func NewServer(cfg config.Config, store repository.Users, generator feedback.Generator, mail *mailer.Mailer, limiter *ratelimit.Limiter, log *logger.Logger) *Server {
	// Per-server registry so parallel test servers never fight over the
	// global one.
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by path and status code.",
	}, []string{"path", "status"})
	registry.MustRegister(requests)

	return &Server{
		cfg:      cfg,
		store:    store,
		feedback: generator,
		mailer:   mail,
		limiter:  limiter,
		log:      log,
		registry: registry,
		requests: requests,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/auth/me", s.handleMe)
		r.Post("/auth/logout", s.handleLogout)
		r.Post("/ai-feedback", s.handleAIFeedback)
		r.Post("/contact", s.handleContact)
	})

	r.With(s.requireSessionCookie).Get(s.cfg.Session.ProtectedPrefix, s.handleDashboard)
	r.With(s.requireSessionCookie).Get(s.cfg.Session.ProtectedPrefix+"/*", s.handleDashboard)

	return r
}

// requireSessionCookie redirects anonymous requests under the protected
// prefix to the login page, preserving the requested path as the return
// target. Presence only; the handler behind it still runs the full
// signature check.
func (s *Server) requireSessionCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cfg.Session.CookieName)
		if err != nil || cookie.Value == "" {
			target := s.cfg.Session.LoginPath + "?next=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.requests.WithLabelValues(r.URL.Path, strconv.Itoa(ww.Status())).Inc()
	})
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"ok": false, "error": message})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		host = r.RemoteAddr
	}
	if host == "" {
		return "unknown"
	}
	return host
}
