/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 * Authors: Zachary Bower
 */

package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"score-pickems/api/api"
	"score-pickems/api/logic"
	"score-pickems/api/scoring"
	"score-pickems/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Score PickEms Bot v1.0\n")
	res.WriteString("`$matches`: shows the matches you can predict and the results of finished ones\n")
	res.WriteString("`$predict <match> <home:away>`: sets your predicted score for a match, e.g. `$predict navi vs faze 2:1`\n")
	res.WriteString("`$check <match>`: shows your prediction for a match and your points once it has finished\n")
	res.WriteString("`$points <match>`: shows the points table for a finished match\n")
	res.WriteString("Points: 2 for the exact score, 1 for the right result (home win, away win or draw), 0 otherwise\n")
	res.WriteString("There is fuzzy matching on match names, however you should try and have a close match for the best results\n")
	if b.isAdmin(message.Author.ID) {
		res.WriteString("`$addmatch <home> vs <away>`: adds a match (admin)\n")
		res.WriteString("`$result <match> <home:away>`: publishes the final score and calculates points (admin)\n")
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// matchesHandler handles the $matches command with a DiscordSession interface
func (b *Bot) matchesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	matches, err := b.APIPtr.GetMatches()
	if err != nil {
		log.Error().Err(err).Msg("failed to get matches")
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the matches list")
		return
	}

	if len(matches) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No matches have been added yet")
		return
	}

	var res strings.Builder
	res.WriteString("Matches:\n")
	for _, match := range matches {
		res.WriteString(match)
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// predictHandler handles the $predict command with a DiscordSession interface
func (b *Bot) predictHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	matchInput, guess, ok := splitMatchAndScore(args)
	if !ok {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$predict <match> <home:away>`")
		return
	}

	matchID, err := b.APIPtr.SetUserPrediction(user, matchInput, guess)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured setting %s's prediction: %s", user.Username, describeError(err)))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s's prediction for %s has been updated\n", user.Username, matchID))
}

// checkHandler handles the $check command with a DiscordSession interface
func (b *Bot) checkHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	if len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$check <match>`")
		return
	}

	res, err := b.APIPtr.CheckPrediction(user, strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			res = fmt.Sprintf("%s does not have a prediction for that match. Use $predict to set one\n", user.Username)
		} else {
			res = fmt.Sprintf("An error occured checking %s's prediction: %s", user.Username, describeError(err))
		}
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// pointsHandler handles the $points command with a DiscordSession interface
func (b *Bot) pointsHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$points <match>`")
		return
	}

	res, err := b.APIPtr.GetLeaderboard(strings.Join(args, " "))
	if err != nil {
		res = fmt.Sprintf("An error occured getting the points: %s", describeError(err))
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// addMatchHandler handles the admin only $addmatch command with a DiscordSession interface
func (b *Bot) addMatchHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(message.Author.ID) {
		session.ChannelMessageSend(message.ChannelID, "Only admins can add matches")
		return
	}

	home, away, ok := splitTeams(args)
	if !ok {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$addmatch <home> vs <away>`")
		return
	}

	matchID, err := b.APIPtr.AddMatch(home, away)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured adding the match: %s", describeError(err)))
		return
	}
	log.Info().Str("match", matchID).Str("admin", message.Author.ID).Msg("match added")
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Added %s, predictions are open\n", matchID))
}

// resultHandler handles the admin only $result command with a DiscordSession interface
func (b *Bot) resultHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(message.Author.ID) {
		session.ChannelMessageSend(message.ChannelID, "Only admins can publish results")
		return
	}

	matchInput, result, ok := splitMatchAndScore(args)
	if !ok {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$result <match> <home:away>`")
		return
	}

	matchID, err := b.APIPtr.SetMatchResult(matchInput, result)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured publishing the result: %s", describeError(err)))
		return
	}
	log.Info().Str("match", matchID).Str("result", result).Str("admin", message.Author.ID).Msg("result published")

	report, err := b.APIPtr.GetLeaderboard(matchID)
	if err != nil {
		report = fmt.Sprintf("Result for %s saved but the points could not be loaded: %s", matchID, describeError(err))
	}
	session.ChannelMessageSend(message.ChannelID, report)
}

// describeError turns an api error into a message that can be shown to users. Unexpected errors are logged and
// hidden behind a generic message
func describeError(err error) string {
	var parseErr *scoring.ParseError
	switch {
	case errors.As(err, &parseErr):
		return fmt.Sprintf("'%s' is not a valid score, scores look like 2:1", parseErr.Input)
	case errors.Is(err, logic.ErrUnknownMatch):
		return "could not find that match, use $matches to see the matches"
	case errors.Is(err, api.ErrMatchClosed):
		return "that match has already finished, predictions are closed"
	case errors.Is(err, api.ErrNoResult):
		return "that match doesn't have a result yet"
	case errors.Is(err, api.ErrInvalidTeams), errors.Is(err, api.ErrMatchExists):
		return err.Error()
	}
	log.Error().Err(err).Msg("unexpected api error")
	return "an unexpected error occured"
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}

	command, args, err := parseCommand(message.Content)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "Could not read that command, check your quotes are closed")
		return
	}
	if !isCommand(command) {
		return
	}

	allowed, notify := b.limiter.allow(message.Author.ID, time.Now())
	if !allowed {
		if notify {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s, slow down! Try again in a few seconds", message.Author.Username))
		}
		return
	}

	// Route to appropriate handler
	switch command {
	case "$help":
		b.helpMessageHandler(session, message)
	case "$matches":
		b.matchesHandler(session, message)
	case "$predict":
		b.predictHandler(session, message, args)
	case "$check":
		b.checkHandler(session, message, args)
	case "$points":
		b.pointsHandler(session, message, args)
	case "$addmatch":
		b.addMatchHandler(session, message, args)
	case "$result":
		b.resultHandler(session, message, args)
	}
}

func isCommand(command string) bool {
	switch command {
	case "$help", "$matches", "$predict", "$check", "$points", "$addmatch", "$result":
		return true
	}
	return false
}
