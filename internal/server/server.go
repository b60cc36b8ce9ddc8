// Package server is the thin HTTP shell around the session controller: it
// decodes requests, invokes the load/calculate actions on the caller's
// session, and ships the results (and the dashboard page) back as JSON/HTML.
package server

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/davichuder/volatility-explorer/internal/collector"
	"github.com/davichuder/volatility-explorer/internal/recorder"
	"github.com/davichuder/volatility-explorer/internal/session"
)

//go:embed web/index.html
var indexHTML []byte

const sessionCookie = "ve_session"

// Defaults seeds the dashboard inputs.
type Defaults struct {
	Ticker       string `json:"ticker"`
	Window       int    `json:"window"`
	LookbackDays int    `json:"lookback_days"`
}

// Server wires the HTTP routes to the session store and the fetcher.
type Server struct {
	fetcher  collector.Fetcher
	store    *session.Store
	recorder recorder.Recorder
	defaults Defaults
	router   chi.Router
}

// New builds the server and its routes.
func New(fetcher collector.Fetcher, store *session.Store, rec recorder.Recorder, defaults Defaults) *Server {
	s := &Server{
		fetcher:  fetcher,
		store:    store,
		recorder: rec,
		defaults: defaults,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/health", s.handleHealth)
		r.Get("/defaults", s.handleDefaults)
		r.Post("/load", s.withSession(s.handleLoad))
		r.Post("/calculate", s.withSession(s.handleCalculate))
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// withSession resolves the caller's session from the cookie, issuing a new
// session (and cookie) when none exists or the old one expired.
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}
		sess, created := s.store.Get(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next(w, r, sess)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.defaults)
}
