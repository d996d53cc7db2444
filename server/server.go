// Package server is the thin request-dispatch surface over the session flow.
// It carries no business rules: every decision lives in the auth package.
package server

import (
	"fmt"
	"net/http"

	"github.com/semdex/auth-service/auth"
	"github.com/semdex/auth-service/internal/config"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	config   config.Config
	sessions *auth.SessionService
}

func New(cfg config.Config, sessions *auth.SessionService) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[server.New] config is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("[server.New] session service is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: sessions,
		env:      cfg.GetEnv(),
	}
	s.initRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
