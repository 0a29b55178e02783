/* match_results.go
 * Contains the methods for interacting with the match_results collection
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

// StoreMatch creates or updates a match. Only the non-empty fields of match are written, so a result can be
// published without repeating the team names
// Preconditions: Receives MatchResult with at least MatchID set
// Postconditions: Upserts the match document and returns nil, or an error if it occurs
func (s *Store) StoreMatch(match MatchResult) error {
	if match.MatchID == "" {
		return fmt.Errorf("match id cannot be empty")
	}

	ctx, cancel := s.opContext()
	defer cancel()

	set := bson.M{"updated_at": match.UpdatedAt}
	if match.Home != "" {
		set["home"] = match.Home
	}
	if match.Away != "" {
		set["away"] = match.Away
	}
	if match.Result != "" {
		set["result"] = match.Result
	}

	filter := bson.M{"matchid": match.MatchID}
	update := bson.M{"$set": set}

	log.Debug().Str("match", match.MatchID).Str("result", match.Result).Msg("storing match")
	_, err := s.Collections.MatchResults.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store match: %w", err)
	}
	return nil
}

// GetMatch fetches a single match from the DB
// Preconditions: Receives the match id
// Postconditions: Returns the MatchResult, mongo.ErrNoDocuments if the match doesn't exist, or an error if it occurs
func (s *Store) GetMatch(matchID string) (MatchResult, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	var match MatchResult
	err := s.Collections.MatchResults.FindOne(ctx, bson.M{"matchid": matchID}).Decode(&match)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return MatchResult{}, err
		}
		return MatchResult{}, fmt.Errorf("error fetching match from db: %w", err)
	}
	return match, nil
}

// ListMatches returns every stored match ordered by match id
func (s *Store) ListMatches() ([]MatchResult, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "matchid", Value: 1}})
	cursor, err := s.Collections.MatchResults.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from db: %w", err)
	}

	matches := []MatchResult{}
	if err = cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of matches: %w", err)
	}
	return matches, nil
}
