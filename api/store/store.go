/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * user_predictions, match_results and leaderboard. Each of these files contain methods for interacting with that
 * collection of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultTimeout bounds every individual db operation
const DefaultTimeout = 10 * time.Second

// Collections holds the collections used by the store
type Collections struct {
	Predictions  *mongo.Collection
	MatchResults *mongo.Collection
	Leaderboard  *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Timeout     time.Duration
	Collections Collections
}

// NewStore initialises the db connection and the collections used by the store
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return newStoreFromDatabase(client, client.Database(dbName)), nil
}

// newStoreFromDatabase wires the collections for an already connected database
func newStoreFromDatabase(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Client:   client,
		Database: db,
		Timeout:  DefaultTimeout,
		Collections: Collections{
			Predictions:  db.Collection("user_predictions"),
			MatchResults: db.Collection("match_results"),
			Leaderboard:  db.Collection("leaderboard"),
		},
	}
}

// opContext returns a context bounded by the store timeout
func (s *Store) opContext() (context.Context, context.CancelFunc) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}
