/* models.go
 * This file contain the errors and helper values that are used by api consumers
 * Authors: Zachary Bower
 */

package api

import "errors"

var (
	// ErrNoResult is returned when points are requested for a match that hasn't finished
	ErrNoResult = errors.New("match has no result yet")
	// ErrMatchClosed is returned when a prediction is made after the result has been published
	ErrMatchClosed = errors.New("match has already finished, predictions are closed")
	// ErrInvalidTeams is returned when a match is created without two different team names
	ErrInvalidTeams = errors.New("invalid teams")
	// ErrMatchExists is returned when a match is added twice
	ErrMatchExists = errors.New("match already exists")
)
