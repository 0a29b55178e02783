/* leaderboard_test.go
 * Contains unit tests for leaderboard.go
 * Authors: Zachary Bower
 */

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// region FetchLeaderboardFromDB tests

func TestFetchLeaderboardFromDB_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully fetches leaderboard", func(mt *mtest.T) {
		store := newTestStore(mt)

		leaderboardDoc := mtest.CreateCursorResponse(0, "test.leaderboard", mtest.FirstBatch, bson.D{
			{Key: "matchid", Value: "m1"},
			{Key: "result", Value: "3:4"},
			{Key: "updated_at", Value: time.Now()},
			{Key: "entries", Value: bson.A{
				bson.D{
					{Key: "userid", Value: "user4"},
					{Key: "username", Value: "Four"},
					{Key: "guess", Value: "3:4"},
					{Key: "points", Value: 2},
				},
				bson.D{
					{Key: "userid", Value: "user3"},
					{Key: "username", Value: "Three"},
					{Key: "guess", Value: "2:3"},
					{Key: "points", Value: 1},
				},
			}},
		})
		mt.AddMockResponses(leaderboardDoc)

		entries, err := store.FetchLeaderboardFromDB("m1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "user4", entries[0].UserID)
		assert.Equal(t, "Four", entries[0].Username)
		assert.Equal(t, 2, entries[0].Points)
		assert.Equal(t, "2:3", entries[1].Guess)
	})
}

func TestFetchLeaderboardFromDB_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns error when no leaderboard found", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.leaderboard", mtest.FirstBatch))

		entries, err := store.FetchLeaderboardFromDB("m1")
		assert.Equal(t, mongo.ErrNoDocuments, err)
		assert.Nil(t, entries)
	})
}

func TestFetchLeaderboardFromDB_DatabaseError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns error on database failure", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "internal error",
		}))

		entries, err := store.FetchLeaderboardFromDB("m1")
		assert.Error(t, err)
		assert.Nil(t, entries)
		assert.Contains(t, err.Error(), "failed to fetch leaderboard from database")
	})
}

// endregion

// region StoreLeaderboard tests

func TestStoreLeaderboard_Empty(t *testing.T) {
	store := &Store{}

	err := store.StoreLeaderboard(Leaderboard{})
	assert.EqualError(t, err, "leaderboard is empty")
}

func TestStoreLeaderboard_InsertNew(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts when no leaderboard exists", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.leaderboard", mtest.FirstBatch))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := store.StoreLeaderboard(Leaderboard{
			MatchID: "m1",
			Result:  "3:4",
			Entries: []LeaderboardEntry{{UserID: "user1", Username: "One", Guess: "3:4", Points: 2}},
		})
		assert.NoError(t, err)
	})
}

func TestStoreLeaderboard_UpdateExisting(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updates an existing leaderboard", func(mt *mtest.T) {
		store := newTestStore(mt)

		existing := mtest.CreateCursorResponse(0, "test.leaderboard", mtest.FirstBatch, bson.D{
			{Key: "matchid", Value: "m1"},
		})
		mt.AddMockResponses(existing, mtest.CreateSuccessResponse())

		err := store.StoreLeaderboard(Leaderboard{MatchID: "m1", Result: "1:0"})
		assert.NoError(t, err)
	})
}

func TestStoreLeaderboard_LookupError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns error when lookup fails", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "internal error",
		}))

		err := store.StoreLeaderboard(Leaderboard{MatchID: "m1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "lookup for existing record failed")
	})
}

func TestStoreLeaderboard_InsertError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns error when insert fails", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.leaderboard", mtest.FirstBatch))
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := store.StoreLeaderboard(Leaderboard{MatchID: "m1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "leaderboard insert failed")
	})
}

// endregion
