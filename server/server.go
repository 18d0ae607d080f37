// Package server exposes reputation profiles and the supporting role,
// GitHub and reward endpoints over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tranvictor/repscan/auth"
	"github.com/tranvictor/repscan/profile"
	"github.com/tranvictor/repscan/rewards"
	"github.com/tranvictor/repscan/scoring"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type ProfileService interface {
	Aggregate(ctx context.Context, address string) (*profile.Profile, error)
}

type RoleScorer interface {
	CalculateRole(ctx context.Context, req scoring.Request) (*scoring.Result, error)
}

type GitHubAuthenticator interface {
	Callback(ctx context.Context, code string) (string, error)
}

type Rewarder interface {
	Reward(ctx context.Context, address string, amount string) (string, error)
	MintBadge(ctx context.Context, req rewards.BadgeRequest) (*rewards.BadgeMint, error)
	CheckBadge(ctx context.Context, address string) (*rewards.BadgeStatus, error)
}

type Server struct {
	addr     string
	profiles ProfileService
	scorer   RoleScorer
	github   GitHubAuthenticator
	rewarder Rewarder
	metrics  *Metrics
	log      *zap.Logger

	handler http.Handler
}

type Option func(*Server)

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithScorer mounts POST /api/calculate-role.
func WithScorer(scorer RoleScorer) Option {
	return func(s *Server) { s.scorer = scorer }
}

// WithGitHub mounts GET /api/github/callback.
func WithGitHub(github GitHubAuthenticator) Option {
	return func(s *Server) { s.github = github }
}

// WithRewarder mounts the reward and badge routes.
func WithRewarder(rewarder Rewarder) Option {
	return func(s *Server) { s.rewarder = rewarder }
}

func New(addr string, profiles ProfileService, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		profiles: profiles,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics("")
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /api/onchain-stats", s.handleOnchainStats)
	if s.scorer != nil {
		mux.HandleFunc("POST /api/calculate-role", s.handleCalculateRole)
	}
	if s.github != nil {
		mux.HandleFunc("GET /api/github/callback", s.handleGitHubCallback)
	}
	if s.rewarder != nil {
		mux.HandleFunc("POST /api/reward", s.handleReward)
		mux.HandleFunc("POST /api/mint-badge", s.handleMintBadge)
		mux.HandleFunc("GET /api/mint-badge/check-badge", s.handleCheckBadge)
	}
	// the mux records the matched pattern on the request withLogging holds,
	// so nothing in between may copy it
	return withRequestID(s.withLogging(s.withRecover(withCORS(mux))))
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func (s *Server) handleOnchainStats(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	log := s.requestLogger(r.Context()).With(zap.String("address", address))

	p, err := s.profiles.Aggregate(r.Context(), address)
	if err != nil {
		status, body := renderError(err)
		if status >= http.StatusInternalServerError {
			log.Error("couldn't build profile", zap.Error(err))
		}
		writeJSON(w, status, body)
		return
	}
	if len(p.Degraded) > 0 {
		log.Info("profile served with fallbacks", zap.Any("degraded", p.Degraded))
	}
	writeJSON(w, http.StatusOK, renderProfile(p))
}

func (s *Server) handleCalculateRole(w http.ResponseWriter, r *http.Request) {
	req := scoring.Request{}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}
	result, err := s.scorer.CalculateRole(r.Context(), req)
	if err != nil {
		s.requestLogger(r.Context()).Error("couldn't calculate role", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgRoleFailed})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	redirect, err := s.github.Callback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrMissingCode) {
			status = http.StatusBadRequest
		}
		s.requestLogger(r.Context()).Warn("github auth failed", zap.Error(err))
		http.Error(w, msgGitHubAuthError, status)
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}
