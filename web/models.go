/* models.go
 * Contains the configuration and request / response bodies for the web server
 * Authors: Zachary Bower
 */

package web

import (
	"score-pickems/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr   string
	API    *api.API
	Secret string // shared secret expected in the X-Webhook-Secret header, the result webhook is disabled without one
}

// Server is the HTTP server that handles webhook requests
type Server struct {
	api    *api.API
	secret string
}

// ResultEvent is the body of a result webhook
type ResultEvent struct {
	Home   string `json:"home"`
	Away   string `json:"away"`
	Result string `json:"result"`
}

// ScoreRequest is the body of a stateless scoring request
type ScoreRequest struct {
	Predictions map[string]string `json:"predictions"`
	Result      string            `json:"result"`
}

// ScoreResponse is returned by the score endpoint
type ScoreResponse struct {
	Points map[string]int `json:"points"`
}

// ErrorResponse is returned when a request can't be processed
type ErrorResponse struct {
	Error string `json:"error"`
	User  string `json:"user,omitempty"`
}
