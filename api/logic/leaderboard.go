/* leaderboard.go
 * Contains the logic for turning calculated points into a leaderboard and report
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"score-pickems/api/store"
)

// BuildLeaderboard joins the stored predictions for a match with the points calculated for them.
// Preconditions: Receives the match id, the result string, the predictions and a userID : points map for the same users
// Postconditions: Returns a Leaderboard with one entry per prediction, ordered by points (highest first) and then username
func BuildLeaderboard(matchID string, result string, preds []store.Prediction, points map[string]int) store.Leaderboard {
	entries := make([]store.LeaderboardEntry, 0, len(preds))
	for _, pred := range preds {
		entries = append(entries, store.LeaderboardEntry{
			UserID:   pred.UserID,
			Username: pred.Username,
			Guess:    pred.Guess,
			Points:   points[pred.UserID],
		})
	}

	SortEntries(entries)

	return store.Leaderboard{
		MatchID:   matchID,
		Result:    result,
		UpdatedAt: time.Now(),
		Entries:   entries,
	}
}

// SortEntries orders leaderboard entries by points descending, using username then user id as tie breakers
func SortEntries(entries []store.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].Username != entries[j].Username {
			return entries[i].Username < entries[j].Username
		}
		return entries[i].UserID < entries[j].UserID
	})
}

// FormatPointsReport generates the response string for a match's leaderboard
func FormatPointsReport(matchID string, entries []store.LeaderboardEntry) string {
	var response strings.Builder
	response.WriteString(fmt.Sprintf("Points for %s:\n", matchID))
	if len(entries) == 0 {
		response.WriteString("Nobody predicted this match\n")
		return response.String()
	}
	for i, entry := range entries {
		response.WriteString(fmt.Sprintf("%d. %s (%s): %d %s\n", i+1, entry.Username, entry.Guess, entry.Points, pointsLabel(entry.Points)))
	}
	return response.String()
}

func pointsLabel(points int) string {
	if points == 1 {
		return "point"
	}
	return "points"
}
