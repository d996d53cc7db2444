package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/semdex/auth-service/auth"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx != -1 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// writeFlowError maps session-flow failures to HTTP statuses. Anything that
// is not a recognized flow result is treated as an infrastructure outage.
func writeFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.AuthenticationFailedErr):
		writeError(w, http.StatusUnauthorized, auth.AuthenticationFailedErr.Error())
	case errors.Is(err, auth.DeviceNotRegisteredErr):
		writeError(w, http.StatusUnauthorized, auth.DeviceNotRegisteredErr.Error())
	case errors.Is(err, auth.UserNotFoundErr):
		writeError(w, http.StatusNotFound, auth.UserNotFoundErr.Error())
	case errors.Is(err, auth.NoCurrentUserErr):
		writeError(w, http.StatusUnauthorized, auth.NoCurrentUserErr.Error())
	default:
		log.Error().Err(err).Msg("session flow failed")
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Identifier == "" || req.Method == "" {
			writeError(w, http.StatusBadRequest, "identifier and method are required")
			return
		}
		if req.DeviceInfo == "" {
			req.DeviceInfo = r.UserAgent()
		}

		result, err := s.sessions.Login(r.Context(), req, clientIP(r))
		if err != nil {
			writeFlowError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	type logoutRequest struct {
		UserID int64 `json:"userId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req logoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s.sessions.Logout(r.Context(), req.UserID, clientIP(r))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.sessions.CurrentUser(r.Context(), bearerToken(r))
		if err != nil {
			writeFlowError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) MagicLinkHandler() http.HandlerFunc {
	type magicLinkRequest struct {
		Email string `json:"email"`
	}
	type magicLinkResponse struct {
		MagicLink string `json:"magicLink"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req magicLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}

		link, err := s.sessions.MagicLink(r.Context(), req.Email)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, magicLinkResponse{MagicLink: link})
	}
}

func (s *Server) DeviceLoginHandler() http.HandlerFunc {
	type deviceLoginRequest struct {
		DeviceID string `json:"deviceId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req deviceLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" {
			writeError(w, http.StatusBadRequest, "deviceId is required")
			return
		}

		result, err := s.sessions.LocalDeviceLogin(r.Context(), req.DeviceID, clientIP(r))
		if err != nil {
			writeFlowError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
