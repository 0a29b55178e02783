/* user_predictions.go
 * Contains the methods for interacting with the user_predictions collection
 * Authors: Zachary Bower
 */

package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreUserPrediction stores a user's prediction for a match in the db
// Preconditions: Receives Prediction containing the user, match and guess
// Postconditions: Creates or replaces the user's prediction for the match in a single upsert, so concurrent calls for
// the same user and match can't create two documents. Returns an error if the operation was unsuccessful
func (s *Store) StoreUserPrediction(userPrediction Prediction) error {
	if userPrediction.UserID == "" || userPrediction.MatchID == "" {
		return fmt.Errorf("user id and match id are required")
	}

	ctx, cancel := s.opContext()
	defer cancel()

	filter := bson.M{
		"userid":  userPrediction.UserID,
		"matchid": userPrediction.MatchID,
	}
	update := bson.M{
		"$set": bson.M{
			"username":   userPrediction.Username,
			"guess":      userPrediction.Guess,
			"updated_at": userPrediction.UpdatedAt,
		},
	}

	_, err := s.Collections.Predictions.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store user prediction: %w", err)
	}
	return nil
}

// GetUserPrediction does DB lookup and gets a user's prediction for a match
// Preconditions: Receives strings containing userID and matchID
// Postconditions: Returns the prediction if it exists, mongo.ErrNoDocuments if it doesn't, or an error if it occurs
func (s *Store) GetUserPrediction(userID string, matchID string) (Prediction, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	var result Prediction
	err := s.Collections.Predictions.FindOne(ctx, bson.M{"userid": userID, "matchid": matchID}, options.FindOne()).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Prediction{}, err
		}
		return Prediction{}, fmt.Errorf("error fetching prediction from db: %w", err)
	}

	return result, nil
}

// GetMatchPredictions gets the predictions of every user for a match. Used in points calculations.
// It receives the match id.
// It returns slice of Predictions (empty if nobody has predicted yet) or an error if it occurs.
func (s *Store) GetMatchPredictions(matchID string) ([]Prediction, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	filter := bson.D{{Key: "matchid", Value: matchID}}
	opts := options.Find().SetSort(bson.D{{Key: "userid", Value: 1}})

	cursor, err := s.Collections.Predictions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching predictions from db: %w", err)
	}

	// Unpack the cursor into a slice
	results := []Prediction{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of predictions: %w", err)
	}

	return results, nil
}
