/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, fuctions should
 * only be called from this file, not the sub packages for store and logic
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"score-pickems/api/logic"
	"score-pickems/api/scoring"
	"score-pickems/api/shared"
	"score-pickems/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// API provides methods for interacting with the pickems data layer
type API struct {
	Store store.Interface
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string) (*API, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI are required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store: s,
	}, nil
}

// AddMatch creates a match that users can predict on.
// It receives the home and away team names.
// It returns the id of the match, ErrMatchExists if the match was already added (ignoring case), or an error if it occurs.
func (a *API) AddMatch(home string, away string) (string, error) {
	home, away, err := validateTeams(home, away)
	if err != nil {
		return "", err
	}

	matchID := logic.MatchID(home, away)
	existing, found, err := a.findMatch(matchID)
	if err != nil {
		return "", err
	}
	if found {
		return "", fmt.Errorf("%w: %s", ErrMatchExists, existing.MatchID)
	}

	err = a.Store.StoreMatch(store.MatchResult{
		MatchID:   matchID,
		Home:      home,
		Away:      away,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	return matchID, nil
}

// validateTeams trims the team names and checks there are two different teams
func validateTeams(home string, away string) (string, string, error) {
	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if home == "" || away == "" {
		return "", "", fmt.Errorf("%w: both a home and away team are required", ErrInvalidTeams)
	}
	if strings.EqualFold(home, away) {
		return "", "", fmt.Errorf("%w: '%s' can't play itself", ErrInvalidTeams, home)
	}
	return home, away, nil
}

// SetUserPrediction contains the logic to set a user prediction in the DB.
// It receives a user struct that contains userID and userName, the match name as typed by the user and their guess.
// It returns the id of the match the prediction was stored against, or an error if it occurs.
func (a *API) SetUserPrediction(user shared.User, matchInput string, guess string) (string, error) {
	score, err := scoring.ParseScore(logic.NormalizeGuess(guess))
	if err != nil {
		return "", err
	}

	match, err := a.resolveMatch(matchInput)
	if err != nil {
		return "", err
	}
	if match.Finished() {
		return "", fmt.Errorf("%w: %s", ErrMatchClosed, match.MatchID)
	}

	err = a.Store.StoreUserPrediction(store.Prediction{
		UserID:    user.UserID,
		Username:  user.Username,
		MatchID:   match.MatchID,
		Guess:     score.String(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	return match.MatchID, nil
}

// SetMatchResult records the final score of an existing match and recalculates its leaderboard.
// It receives the match name as typed by the user and the result in "home:away" format.
// It returns the id of the match, or an error if it occurs.
func (a *API) SetMatchResult(matchInput string, result string) (string, error) {
	score, err := scoring.ParseScore(logic.NormalizeGuess(result))
	if err != nil {
		return "", err
	}

	match, err := a.resolveMatch(matchInput)
	if err != nil {
		return "", err
	}

	return match.MatchID, a.publish(store.MatchResult{MatchID: match.MatchID, Result: score.String()})
}

// PublishResult records the final score of a match between two teams, creating the match if it doesn't exist.
// Used by the results webhook where teams are named exactly. An existing match is found ignoring case so its
// predictions are scored.
func (a *API) PublishResult(home string, away string, result string) (string, error) {
	score, err := scoring.ParseScore(logic.NormalizeGuess(result))
	if err != nil {
		return "", err
	}
	home, away, err = validateTeams(home, away)
	if err != nil {
		return "", err
	}

	existing, found, err := a.findMatch(logic.MatchID(home, away))
	if err != nil {
		return "", err
	}
	if found {
		return existing.MatchID, a.publish(store.MatchResult{MatchID: existing.MatchID, Result: score.String()})
	}

	matchID := logic.MatchID(home, away)
	return matchID, a.publish(store.MatchResult{
		MatchID: matchID,
		Home:    home,
		Away:    away,
		Result:  score.String(),
	})
}

// publish stores a finished match and regenerates its leaderboard
func (a *API) publish(match store.MatchResult) error {
	match.UpdatedAt = time.Now()
	if err := a.Store.StoreMatch(match); err != nil {
		return err
	}
	return a.GenerateLeaderboard(match.MatchID)
}

// CheckPrediction contains the logic required to check a prediction.
// It receives a user struct and the match name as typed by the user.
// It returns a string containing the user's prediction and its points if the match has finished, or an error if it occurs.
// mongo.ErrNoDocuments is returned if the user hasn't predicted the match.
func (a *API) CheckPrediction(user shared.User, matchInput string) (string, error) {
	match, err := a.resolveMatch(matchInput)
	if err != nil {
		return "", err
	}

	pred, err := a.Store.GetUserPrediction(user.UserID, match.MatchID)
	if err != nil {
		return "", err
	}

	if !match.Finished() {
		return fmt.Sprintf("%s predicted %s for %s [Pending]\n", user.Username, pred.Guess, match.MatchID), nil
	}

	points, err := scoring.CalculatePoints(map[string]string{user.UserID: pred.Guess}, match.Result)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s predicted %s for %s, final score %s: %d points\n", user.Username, pred.Guess, match.MatchID, match.Result, points[user.UserID]), nil
}

// CalculateMatchPoints calculates the points for every user who predicted a match.
// It receives the match id.
// It returns a map of userID : points, ErrNoResult if the match hasn't finished, or an error if it occurs.
func (a *API) CalculateMatchPoints(matchID string) (map[string]int, error) {
	match, err := a.Store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	_, points, err := a.matchPoints(match)
	return points, err
}

// matchPoints loads the predictions for a finished match and scores them
func (a *API) matchPoints(match store.MatchResult) ([]store.Prediction, map[string]int, error) {
	if !match.Finished() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoResult, match.MatchID)
	}

	preds, err := a.Store.GetMatchPredictions(match.MatchID)
	if err != nil {
		return nil, nil, err
	}

	guesses := make(map[string]string, len(preds))
	for _, pred := range preds {
		guesses[pred.UserID] = pred.Guess
	}

	points, err := scoring.CalculatePoints(guesses, match.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to calculate points for %s: %w", match.MatchID, err)
	}
	return preds, points, nil
}

// GenerateLeaderboard contains the logic required to generate a leaderboard.
// It receives the match id. The match must have a result
// It generates the leaderboard, updates it in the DB and returns nil, or returns an error if it occurs
func (a *API) GenerateLeaderboard(matchID string) error {
	match, err := a.Store.GetMatch(matchID)
	if err != nil {
		return err
	}

	preds, points, err := a.matchPoints(match)
	if err != nil {
		return err
	}

	return a.Store.StoreLeaderboard(logic.BuildLeaderboard(match.MatchID, match.Result, preds, points))
}

// GetLeaderboard fetches the leaderboard for a match from the db and generates a response string
// It receives the match name as typed by the user.
// It returns a string with the points of every user, ErrNoResult if the match hasn't finished, or an error if it occurs.
func (a *API) GetLeaderboard(matchInput string) (string, error) {
	match, err := a.resolveMatch(matchInput)
	if err != nil {
		return "", err
	}
	if !match.Finished() {
		return "", fmt.Errorf("%w: %s", ErrNoResult, match.MatchID)
	}

	entries, err := a.Store.FetchLeaderboardFromDB(match.MatchID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Result was stored but the leaderboard wasn't, build it now
		if err = a.GenerateLeaderboard(match.MatchID); err != nil {
			return "", err
		}
		entries, err = a.Store.FetchLeaderboardFromDB(match.MatchID)
	}
	if err != nil {
		return "", err
	}

	logic.SortEntries(entries)
	return logic.FormatPointsReport(match.MatchID, entries), nil
}

// GetMatches gets every match users can predict on or have predicted on.
// It returns a string slice with one line per match including its result when known.
func (a *API) GetMatches() ([]string, error) {
	matches, err := a.Store.ListMatches()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Finished() {
			lines = append(lines, fmt.Sprintf("- %s: %s\n", match.MatchID, match.Result))
		} else {
			lines = append(lines, fmt.Sprintf("- %s: upcoming\n", match.MatchID))
		}
	}
	return lines, nil
}

// findMatch looks up a stored match by id ignoring case
func (a *API) findMatch(matchID string) (store.MatchResult, bool, error) {
	matches, err := a.Store.ListMatches()
	if err != nil {
		return store.MatchResult{}, false, err
	}
	for _, match := range matches {
		if strings.EqualFold(match.MatchID, matchID) {
			return match, true, nil
		}
	}
	return store.MatchResult{}, false, nil
}

// resolveMatch finds the stored match the user meant
func (a *API) resolveMatch(matchInput string) (store.MatchResult, error) {
	matches, err := a.Store.ListMatches()
	if err != nil {
		return store.MatchResult{}, err
	}

	ids := make([]string, 0, len(matches))
	byID := make(map[string]store.MatchResult, len(matches))
	for _, match := range matches {
		ids = append(ids, match.MatchID)
		byID[match.MatchID] = match
	}

	id, err := logic.ResolveMatch(matchInput, ids)
	if err != nil {
		return store.MatchResult{}, err
	}
	return byID[id], nil
}
