/* leaderboard.go
 * Contains the methods for interacting with the leaderboard collection
 * Authors: Zachary Bower
 */

package store

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchLeaderboardFromDB returns the leaderboard for a match from the db
// Preconditions: Receives the match id
// Postconditions: Returns slice of LeaderboardEntry with user data, or an error if it occurs
func (s *Store) FetchLeaderboardFromDB(matchID string) ([]LeaderboardEntry, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(ctx, bson.D{{Key: "matchid", Value: matchID}}, options.FindOne()).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}

	return res.Entries, nil
}

// StoreLeaderboard updates the leaderboard stored in the DB
// Preconditions: Receives the Leaderboard value to be stored
// Postconditions: Updates the leaderboard collection in Mongo and returns nil, or an error if it occurs
func (s *Store) StoreLeaderboard(leaderboard Leaderboard) error {
	if leaderboard.MatchID == "" {
		return fmt.Errorf("leaderboard is empty")
	}

	ctx, cancel := s.opContext()
	defer cancel()

	filter := bson.M{"matchid": leaderboard.MatchID}

	// Attempt to find an existing document
	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(ctx, filter).Decode(&res)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing record failed: %w", err)
	}

	// Perform insert or update
	log.Info().Str("match", leaderboard.MatchID).Int("entries", len(leaderboard.Entries)).Msg("updating leaderboard in db")
	if notFound {
		_, err := s.Collections.Leaderboard.InsertOne(ctx, leaderboard)
		if err != nil {
			return fmt.Errorf("leaderboard insert failed: %w", err)
		}
		return nil
	}

	update := bson.D{{Key: "$set", Value: leaderboard}}
	_, err = s.Collections.Leaderboard.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("leaderboard update failed: %w", err)
	}
	return nil
}
