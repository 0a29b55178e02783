/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package and its consumers
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"sort"

	"score-pickems/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the Store interface for testing, keeping everything in memory
type MockStore struct {
	// Storage for mock data
	Predictions  map[string]store.Prediction // keyed by userID + "/" + matchID
	Matches      map[string]store.MatchResult
	Leaderboards map[string]store.Leaderboard

	// Error injection for testing error paths
	StoreUserPredictionError    error
	GetUserPredictionError      error
	GetMatchPredictionsError    error
	StoreMatchError             error
	GetMatchError               error
	ListMatchesError            error
	StoreLeaderboardError       error
	FetchLeaderboardFromDBError error

	DatabaseName string
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements the minimal Client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(context.Context) error {
	return nil
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new, empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Predictions:  make(map[string]store.Prediction),
		Matches:      make(map[string]store.MatchResult),
		Leaderboards: make(map[string]store.Leaderboard),
		DatabaseName: "test_db",
	}
}

func predictionKey(userID string, matchID string) string {
	return userID + "/" + matchID
}

// AddMatch is a helper for seeding matches in tests
func (m *MockStore) AddMatch(matchID, home, away, result string) {
	m.Matches[matchID] = store.MatchResult{MatchID: matchID, Home: home, Away: away, Result: result}
}

// AddPrediction is a helper for seeding predictions in tests
func (m *MockStore) AddPrediction(userID, username, matchID, guess string) {
	m.Predictions[predictionKey(userID, matchID)] = store.Prediction{
		UserID:   userID,
		Username: username,
		MatchID:  matchID,
		Guess:    guess,
	}
}

// StoreUserPrediction mock implementation
func (m *MockStore) StoreUserPrediction(prediction store.Prediction) error {
	if m.StoreUserPredictionError != nil {
		return m.StoreUserPredictionError
	}
	m.Predictions[predictionKey(prediction.UserID, prediction.MatchID)] = prediction
	return nil
}

// GetUserPrediction mock implementation
func (m *MockStore) GetUserPrediction(userID string, matchID string) (store.Prediction, error) {
	if m.GetUserPredictionError != nil {
		return store.Prediction{}, m.GetUserPredictionError
	}
	pred, ok := m.Predictions[predictionKey(userID, matchID)]
	if !ok {
		return store.Prediction{}, mongo.ErrNoDocuments
	}
	return pred, nil
}

// GetMatchPredictions mock implementation, ordered by user id like the real store
func (m *MockStore) GetMatchPredictions(matchID string) ([]store.Prediction, error) {
	if m.GetMatchPredictionsError != nil {
		return nil, m.GetMatchPredictionsError
	}
	preds := []store.Prediction{}
	for _, pred := range m.Predictions {
		if pred.MatchID == matchID {
			preds = append(preds, pred)
		}
	}
	sort.Slice(preds, func(i, j int) bool {
		return preds[i].UserID < preds[j].UserID
	})
	return preds, nil
}

// StoreMatch mock implementation, only non-empty fields overwrite existing values
func (m *MockStore) StoreMatch(match store.MatchResult) error {
	if m.StoreMatchError != nil {
		return m.StoreMatchError
	}
	existing := m.Matches[match.MatchID]
	existing.MatchID = match.MatchID
	existing.UpdatedAt = match.UpdatedAt
	if match.Home != "" {
		existing.Home = match.Home
	}
	if match.Away != "" {
		existing.Away = match.Away
	}
	if match.Result != "" {
		existing.Result = match.Result
	}
	m.Matches[match.MatchID] = existing
	return nil
}

// GetMatch mock implementation
func (m *MockStore) GetMatch(matchID string) (store.MatchResult, error) {
	if m.GetMatchError != nil {
		return store.MatchResult{}, m.GetMatchError
	}
	match, ok := m.Matches[matchID]
	if !ok {
		return store.MatchResult{}, mongo.ErrNoDocuments
	}
	return match, nil
}

// ListMatches mock implementation
func (m *MockStore) ListMatches() ([]store.MatchResult, error) {
	if m.ListMatchesError != nil {
		return nil, m.ListMatchesError
	}
	matches := make([]store.MatchResult, 0, len(m.Matches))
	for _, match := range m.Matches {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchID < matches[j].MatchID
	})
	return matches, nil
}

// StoreLeaderboard mock implementation
func (m *MockStore) StoreLeaderboard(leaderboard store.Leaderboard) error {
	if m.StoreLeaderboardError != nil {
		return m.StoreLeaderboardError
	}
	m.Leaderboards[leaderboard.MatchID] = leaderboard
	return nil
}

// FetchLeaderboardFromDB mock implementation
func (m *MockStore) FetchLeaderboardFromDB(matchID string) ([]store.LeaderboardEntry, error) {
	if m.FetchLeaderboardFromDBError != nil {
		return nil, m.FetchLeaderboardFromDBError
	}
	lb, ok := m.Leaderboards[matchID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	entries := make([]store.LeaderboardEntry, len(lb.Entries))
	copy(entries, lb.Entries)
	return entries, nil
}

// GetDatabase mock implementation
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: m.DatabaseName}
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}
