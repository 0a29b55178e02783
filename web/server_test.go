/* server_test.go
 * Contains unit tests for the web handlers
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"score-pickems/api/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer creates a Server backed by a MockStore holding one match and the reference predictions
func newTestServer(secret string) (*Server, *api.MockStore) {
	mockStore := api.NewMockStore()
	mockStore.AddMatch("Team A vs Team B", "Team A", "Team B", "")
	mockStore.AddPrediction("user1", "One", "Team A vs Team B", "3:2")
	mockStore.AddPrediction("user2", "Two", "Team A vs Team B", "1:0")
	mockStore.AddPrediction("user3", "Three", "Team A vs Team B", "2:3")
	mockStore.AddPrediction("user4", "Four", "Team A vs Team B", "3:4")

	return NewServer(Config{Addr: ":8080", API: &api.API{Store: mockStore}, Secret: secret}), mockStore
}

var authHeader = map[string]string{"X-Webhook-Secret": "secret"}

func do(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

// region result webhook tests

func TestResultWebhook_Success(t *testing.T) {
	s, mockStore := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"Team B","result":"3:4"}`,
		map[string]string{"X-Webhook-Secret": "secret"})

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"match":"Team A vs Team B"}`, rec.Body.String())
	assert.Equal(t, "3:4", mockStore.Matches["Team A vs Team B"].Result)

	lb := mockStore.Leaderboards["Team A vs Team B"]
	require.Len(t, lb.Entries, 4)
	assert.Equal(t, "user4", lb.Entries[0].UserID)
	assert.Equal(t, 2, lb.Entries[0].Points)
}

func TestResultWebhook_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer("")

	rec := do(s, http.MethodGet, "/webhooks/result", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResultWebhook_WrongSecret(t *testing.T) {
	s, mockStore := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"Team B","result":"3:4"}`,
		map[string]string{"X-Webhook-Secret": "nope"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, mockStore.Matches["Team A vs Team B"].Finished())
}

func TestResultWebhook_NoSecretConfigured(t *testing.T) {
	s, mockStore := newTestServer("")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"Team B","result":"1:1"}`, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no secret configured")
	assert.False(t, mockStore.Matches["Team A vs Team B"].Finished())
}

func TestResultWebhook_MissingSecretHeader(t *testing.T) {
	s, mockStore := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"Team B","result":"1:1"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, mockStore.Matches["Team A vs Team B"].Finished())
}

func TestResultWebhook_DifferentCaseScoresExistingMatch(t *testing.T) {
	s, mockStore := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"team a","away":"team b","result":"3:4"}`, authHeader)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"match":"Team A vs Team B"}`, rec.Body.String())
	assert.Len(t, mockStore.Matches, 1)
	require.Len(t, mockStore.Leaderboards["Team A vs Team B"].Entries, 4)
}

func TestResultWebhook_SameTeam(t *testing.T) {
	s, mockStore := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"team a","result":"1:0"}`, authHeader)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, mockStore.Matches, 1)
}

func TestResultWebhook_BadJSON(t *testing.T) {
	s, _ := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":`, authHeader)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResultWebhook_BadScore(t *testing.T) {
	s, _ := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"Team B","result":"3-4"}`, authHeader)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid score")
}

func TestResultWebhook_MissingTeams(t *testing.T) {
	s, _ := newTestServer("secret")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","result":"3:4"}`, authHeader)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResultWebhook_StoreError(t *testing.T) {
	s, mockStore := newTestServer("secret")
	mockStore.StoreMatchError = errors.New("db down")

	rec := do(s, http.MethodPost, "/webhooks/result", `{"home":"Team A","away":"Team B","result":"3:4"}`, authHeader)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

// endregion

// region score tests

func TestScore_ReferenceExample(t *testing.T) {
	s, _ := newTestServer("")

	rec := do(s, http.MethodPost, "/score",
		`{"predictions":{"user1":"3:2","user2":"1:0","user3":"2:3","user4":"3:4"},"result":"3:4"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]int{"user1": 0, "user2": 0, "user3": 1, "user4": 2}, resp.Points)
}

func TestScore_InvalidGuess(t *testing.T) {
	s, _ := newTestServer("")

	rec := do(s, http.MethodPost, "/score", `{"predictions":{"user1":"3:2","user2":"x"},"result":"3:4"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user2", resp.User)
	assert.Contains(t, resp.Error, "invalid score 'x'")
}

func TestScore_InvalidResult(t *testing.T) {
	s, _ := newTestServer("")

	rec := do(s, http.MethodPost, "/score", `{"predictions":{"user1":"3:2"},"result":""}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.User)
}

func TestScore_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer("")

	rec := do(s, http.MethodGet, "/score", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// endregion
