/* helpers_test.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// newTestStore creates a Store backed by the mock deployment of mt
func newTestStore(mt *mtest.T) *Store {
	return newStoreFromDatabase(mt.Client, mt.DB)
}

// predictionDoc creates a prediction document as it would be returned by the db
func predictionDoc(userID, username, matchID, guess string) bson.D {
	return bson.D{
		{Key: "userid", Value: userID},
		{Key: "username", Value: username},
		{Key: "matchid", Value: matchID},
		{Key: "guess", Value: guess},
	}
}

// matchDoc creates a match document as it would be returned by the db
func matchDoc(matchID, home, away, result string) bson.D {
	doc := bson.D{
		{Key: "matchid", Value: matchID},
		{Key: "home", Value: home},
		{Key: "away", Value: away},
	}
	if result != "" {
		doc = append(doc, bson.E{Key: "result", Value: result})
	}
	return doc
}
