/* handlers.go
 * Contains the HTTP handlers for the results webhook and the stateless scoring endpoint
 * Authors: Zachary Bower
 */

package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"score-pickems/api/api"
	"score-pickems/api/scoring"

	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps request bodies, prediction sets are small
const maxBodyBytes = 1 << 20

// NewServer creates a Server from the given configuration
func NewServer(cfg Config) *Server {
	return &Server{
		api:    cfg.API,
		secret: cfg.Secret,
	}
}

// Routes returns the handler with every endpoint registered
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	// bind handler methods that have access to s.api
	mux.HandleFunc("/webhooks/result", s.ResultWebhookHandler)
	mux.HandleFunc("/score", s.ScoreHandler)
	return mux
}

// ResultWebhookHandler HTTP endpoint that receives the final score of a match and kicks off the points calculation
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Stores the result and regenerates the leaderboard for the match, responds 202 on success
func (s *Server) ResultWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	if s.secret == "" {
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "result webhook is disabled, no secret configured"})
		return
	}
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid webhook secret"})
		return
	}

	var event ResultEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&event); err != nil {
		log.Warn().Err(err).Msg("failed to decode webhook")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json body"})
		return
	}

	log.Info().Str("home", event.Home).Str("away", event.Away).Str("result", event.Result).Msg("result webhook received")

	matchID, err := s.api.PublishResult(event.Home, event.Away, event.Result)
	if err != nil {
		var parseErr *scoring.ParseError
		if errors.As(err, &parseErr) || errors.Is(err, api.ErrInvalidTeams) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		log.Error().Err(err).Str("match", matchID).Msg("failed to publish result")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to publish result"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"match": matchID})
}

// ScoreHandler HTTP endpoint that scores a set of predictions against a result without touching the db
// Preconditions: receives a POST with a ScoreRequest body
// Postconditions: responds with the points for every user, or 400 with the offending user if a score can't be parsed
func (s *Server) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req ScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json body"})
		return
	}

	points, err := scoring.CalculatePoints(req.Predictions, req.Result)
	if err != nil {
		resp := ErrorResponse{Error: err.Error()}
		var guessErr *scoring.GuessError
		if errors.As(err, &guessErr) {
			resp.User = guessErr.User
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{Points: points})
}

// authorized checks the webhook secret header
func (s *Server) authorized(r *http.Request) bool {
	given := r.Header.Get("X-Webhook-Secret")
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.secret)) == 1
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
