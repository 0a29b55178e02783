/* leaderboard_test.go
 * Contains unit tests for leaderboard.go
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"score-pickems/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaderboard(t *testing.T) {
	preds := []store.Prediction{
		{UserID: "user1", Username: "dave", Guess: "3:2"},
		{UserID: "user2", Username: "bob", Guess: "1:0"},
		{UserID: "user3", Username: "carol", Guess: "2:3"},
		{UserID: "user4", Username: "alice", Guess: "3:4"},
	}
	points := map[string]int{"user1": 0, "user2": 0, "user3": 1, "user4": 2}

	lb := BuildLeaderboard("m1", "3:4", preds, points)

	assert.Equal(t, "m1", lb.MatchID)
	assert.Equal(t, "3:4", lb.Result)
	assert.False(t, lb.UpdatedAt.IsZero())
	require.Len(t, lb.Entries, 4)
	assert.Equal(t, "alice", lb.Entries[0].Username)
	assert.Equal(t, 2, lb.Entries[0].Points)
	assert.Equal(t, "carol", lb.Entries[1].Username)
	// Tied on zero points, ordered by username
	assert.Equal(t, "bob", lb.Entries[2].Username)
	assert.Equal(t, "dave", lb.Entries[3].Username)
}

func TestBuildLeaderboard_NoPredictions(t *testing.T) {
	lb := BuildLeaderboard("m1", "1:0", nil, map[string]int{})

	assert.NotNil(t, lb.Entries)
	assert.Empty(t, lb.Entries)
}

func TestSortEntries_TieBreakOnUserID(t *testing.T) {
	entries := []store.LeaderboardEntry{
		{UserID: "b", Username: "same", Points: 1},
		{UserID: "a", Username: "same", Points: 1},
	}

	SortEntries(entries)

	assert.Equal(t, "a", entries[0].UserID)
}

func TestFormatPointsReport(t *testing.T) {
	entries := []store.LeaderboardEntry{
		{Username: "alice", Guess: "3:4", Points: 2},
		{Username: "carol", Guess: "2:3", Points: 1},
		{Username: "bob", Guess: "1:0", Points: 0},
	}

	report := FormatPointsReport("m1", entries)

	assert.Equal(t, "Points for m1:\n1. alice (3:4): 2 points\n2. carol (2:3): 1 point\n3. bob (1:0): 0 points\n", report)
}

func TestFormatPointsReport_Empty(t *testing.T) {
	report := FormatPointsReport("m1", nil)

	assert.Equal(t, "Points for m1:\nNobody predicted this match\n", report)
}
