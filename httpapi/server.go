// Package httpapi is the HTTP boundary: one POST endpoint per scan kind,
// JSON in, envelope out. Probe-level failures never surface here; the only
// 400 is a structurally invalid subject, and even that carries a full
// envelope so callers always render the same shape.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trustlens/adscan"
	"trustlens/dropship"
	"trustlens/scoring"
	"trustlens/socialscan"
	"trustlens/tokenscan"
	"trustlens/urlscan"
)

// Server bundles the five analyzers behind one router.
type Server struct {
	urls     *urlscan.Analyzer
	social   *socialscan.Analyzer
	dropship *dropship.Analyzer
	tokens   *tokenscan.Analyzer
	ads      *adscan.Analyzer
}

// New builds the server over ready analyzers.
func New(urls *urlscan.Analyzer, social *socialscan.Analyzer, listings *dropship.Analyzer,
	tokens *tokenscan.Analyzer, ads *adscan.Analyzer) *Server {
	return &Server{
		urls:     urls,
		social:   social,
		dropship: listings,
		tokens:   tokens,
		ads:      ads,
	}
}

// Routes assembles the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/scan", func(r chi.Router) {
		r.Post("/url", s.handleURL)
		r.Post("/social", s.handleSocial)
		r.Post("/dropship", s.handleDropship)
		r.Post("/rugpull", s.handleRugPull)
		r.Post("/ad", s.handleAd)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type urlRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeBody(w, r, &req) {
		return
	}
	env, err := s.urls.Scan(r.Context(), req.URL)
	writeScan(w, env, err)
}

func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	var profile socialscan.Profile
	if !decodeBody(w, r, &profile) {
		return
	}
	env, err := s.social.Scan(r.Context(), profile)
	writeScan(w, env, err)
}

func (s *Server) handleDropship(w http.ResponseWriter, r *http.Request) {
	var listing dropship.Listing
	if !decodeBody(w, r, &listing) {
		return
	}
	env, err := s.dropship.Scan(r.Context(), listing)
	writeScan(w, env, err)
}

func (s *Server) handleRugPull(w http.ResponseWriter, r *http.Request) {
	var contract tokenscan.Contract
	if !decodeBody(w, r, &contract) {
		return
	}
	env, err := s.tokens.Scan(r.Context(), contract)
	writeScan(w, env, err)
}

func (s *Server) handleAd(w http.ResponseWriter, r *http.Request) {
	var ad adscan.Ad
	if !decodeBody(w, r, &ad) {
		return
	}
	env, err := s.ads.Scan(r.Context(), ad)
	writeScan(w, env, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return false
	}
	return true
}

// writeScan maps the analyzer result to a response. A StructuralError gets
// 400 with the rejection envelope; anything else from an analyzer means a
// misconfigured weight table, which is a 500.
func writeScan(w http.ResponseWriter, env *scoring.Envelope, err error) {
	if err != nil {
		var structural *scoring.StructuralError
		if errors.As(err, &structural) {
			writeJSON(w, http.StatusBadRequest, env)
			return
		}
		log.Printf("[httpapi] scan failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[httpapi] write response: %v", err)
	}
}

// ListenAndServe runs the server with graceful shutdown: on ctx cancel the
// listener drains in-flight requests for up to ten seconds.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[httpapi] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[httpapi] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
