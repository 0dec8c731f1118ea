// internal/api/handlers.go
package api

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tahcohcat/daily-mystery/internal/auth"
	"github.com/tahcohcat/daily-mystery/internal/logger"
	"github.com/tahcohcat/daily-mystery/internal/metrics"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/services"
	"github.com/tahcohcat/daily-mystery/internal/websocket"
)

const (
	activityLimit    = 15
	maxActivityLimit = 50
	maxBodyBytes     = 1 << 16
)

type GameHandler struct {
	realm *services.RealmService
}

func NewGameHandler(realm *services.RealmService) *GameHandler {
	return &GameHandler{realm: realm}
}

type errorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Kind    services.Kind `json:"kind,omitempty"`
}

// StatusFor maps a rejection kind to its HTTP status.
func StatusFor(kind services.Kind) int {
	switch kind {
	case services.KindNone:
		return http.StatusOK
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindRateLimited:
		return http.StatusTooManyRequests
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotInitialized:
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.New().WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := services.KindOf(err)
	message := "Service temporarily unavailable"
	if kind == services.KindNotInitialized {
		message = "Mystery not initialized"
	}
	logger.New().WithError(err).WithField("path", r.URL.Path).WithField("kind", string(kind)).
		Error("request failed")
	writeJSON(w, StatusFor(kind), errorResponse{Message: message, Kind: kind})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body", Kind: services.KindValidation})
		return false
	}
	return true
}

// caller returns the session id from the route and the authenticated player.
func caller(r *http.Request) (string, auth.Identity) {
	id, _ := auth.FromContext(r.Context())
	return mux.Vars(r)["session"], id
}

// GET /api/v1/sessions/{session}/init
func (gh *GameHandler) Init(w http.ResponseWriter, r *http.Request) {
	sessionID, id := caller(r)

	resp, err := gh.realm.Init(r.Context(), sessionID, id.UserID, id.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/v1/sessions/{session}/guess
func (gh *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	sessionID, id := caller(r)

	var req models.SubmitGuessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := gh.realm.SubmitGuess(r.Context(), sessionID, id.UserID, id.Username, req.Guess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, StatusFor(resp.Kind), resp)
}

// POST /api/v1/sessions/{session}/submissions
func (gh *GameHandler) SubmitMystery(w http.ResponseWriter, r *http.Request) {
	sessionID, id := caller(r)

	var req models.SubmitMysteryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := gh.realm.SubmitMystery(r.Context(), sessionID, id.UserID, id.Username, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := StatusFor(resp.Kind)
	if resp.Success {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// POST /api/v1/sessions/{session}/submissions/{id}/vote
func (gh *GameHandler) VoteMystery(w http.ResponseWriter, r *http.Request) {
	sessionID, id := caller(r)

	resp, err := gh.realm.VoteMystery(r.Context(), sessionID, id.UserID, id.Username, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, StatusFor(resp.Kind), resp)
}

// GET /api/v1/sessions/{session}/submissions
func (gh *GameHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	sessionID, id := caller(r)

	resp, err := gh.realm.ListSubmissions(r.Context(), sessionID, id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/v1/sessions/{session}/activity?limit=
func (gh *GameHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := caller(r)

	limit := activityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "limit must be a positive integer", Kind: services.KindValidation})
			return
		}
		if n > maxActivityLimit {
			n = maxActivityLimit
		}
		limit = n
	}

	events, err := gh.realm.ListActivity(r.Context(), sessionID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

// Ping is the liveness probe.
func Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrade through the recorder.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// Instrument logs and times every request under its route template.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ObserveRequest(route, r.Method, rec.status, started)
		logger.New().WithField("method", r.Method).WithField("route", route).
			WithField("status", rec.status).WithField("duration", time.Since(started).String()).
			Debug("handled request")
	})
}

// RegisterRoutes mounts the game API under r, which is expected to be the
// /api/v1 subrouter. Every session route requires an identity.
func RegisterRoutes(r *mux.Router, realm *services.RealmService, hub *websocket.Hub, authn *auth.Authenticator) *GameHandler {
	gh := NewGameHandler(realm)

	sessions := r.PathPrefix("/sessions/{session}").Subrouter()
	sessions.Use(authn.Middleware)

	sessions.HandleFunc("/init", gh.Init).Methods("GET")
	sessions.HandleFunc("/guess", gh.SubmitGuess).Methods("POST")
	sessions.HandleFunc("/submissions", gh.SubmitMystery).Methods("POST")
	sessions.HandleFunc("/submissions", gh.ListSubmissions).Methods("GET")
	sessions.HandleFunc("/submissions/{id}/vote", gh.VoteMystery).Methods("POST")
	sessions.HandleFunc("/activity", gh.ListActivity).Methods("GET")
	if hub != nil {
		sessions.HandleFunc("/ws", hub.Handler).Methods("GET")
	}

	return gh
}
