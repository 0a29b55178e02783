/* models.go
 * This file contain the structs that relate to DB objects
 * Authors: Zachary Bower
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prediction is a user's guessed score for a single match
type Prediction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userid,omitempty"`
	Username  string             `bson:"username,omitempty"`
	MatchID   string             `bson:"matchid,omitempty"`
	Guess     string             `bson:"guess,omitempty"` // "home:away"
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

// MatchResult is a match that can be predicted on. Result stays empty until the match has finished
type MatchResult struct {
	MatchID   string    `bson:"matchid,omitempty"`
	Home      string    `bson:"home,omitempty"`
	Away      string    `bson:"away,omitempty"`
	Result    string    `bson:"result,omitempty"` // "home:away"
	UpdatedAt time.Time `bson:"updated_at,omitempty"`
}

// Finished reports whether a final result has been recorded for the match
func (m MatchResult) Finished() bool {
	return m.Result != ""
}

// Leaderboard is the points table for a single match
type Leaderboard struct {
	MatchID   string             `bson:"matchid,omitempty"`
	Result    string             `bson:"result,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
	Entries   []LeaderboardEntry `bson:"entries"`
}

type LeaderboardEntry struct {
	UserID   string `bson:"userid,omitempty"`
	Username string `bson:"username,omitempty"`
	Guess    string `bson:"guess,omitempty"`
	Points   int    `bson:"points"`
}
