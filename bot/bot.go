/* bot.go
 * Contains logic used for creating the bot and parsing commands. Requires a discord bot token and APIPtr, both of
 * which are passed in from main.go
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"

	"score-pickems/api/api"

	"github.com/go-andiamo/splitter"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
	AdminIDs map[string]bool
	limiter  *userLimiter
}

// NewBot creates a bot for the given token. Users in adminIDs can add matches and publish results
func NewBot(botToken string, apiPtr *api.API, adminIDs []string) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			admins[id] = true
		}
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		AdminIDs: admins,
		limiter:  newUserLimiter(defaultCommandRate, defaultCommandBurst),
	}, nil
}

// isAdmin reports whether the user may run admin only commands
func (b *Bot) isAdmin(userID string) bool {
	return b.AdminIDs[userID]
}

// parseCommand splits a message into its command and arguments. Names that contain spaces can be wrapped in double
// quotes, the quotes are removed from the returned arguments
// Preconditions: Receives the message content
// Postconditions: Returns the command (e.g. "$predict") and its arguments, or an error if the quotes are unbalanced
func parseCommand(content string) (string, []string, error) {
	// we use splitter here instead of strings.Fields so quoted names e.g. "Faze Clan" are recognised as one argument
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return "", nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return "", nil, err
	}

	var args []string
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), "\"“”")
		if part != "" {
			args = append(args, part)
		}
	}
	if len(args) == 0 {
		return "", nil, nil
	}
	return strings.ToLower(args[0]), args[1:], nil
}

// splitMatchAndScore treats the last argument as a score and joins the rest into the match name, so
// `$predict navi vs faze 2:1` works without quotes
func splitMatchAndScore(args []string) (string, string, bool) {
	if len(args) < 2 {
		return "", "", false
	}
	return strings.Join(args[:len(args)-1], " "), args[len(args)-1], true
}

// splitTeams splits "<home> vs <away>" into the two team names
func splitTeams(args []string) (string, string, bool) {
	for i, arg := range args {
		if strings.EqualFold(arg, "vs") && i > 0 && i < len(args)-1 {
			return strings.Join(args[:i], " "), strings.Join(args[i+1:], " "), true
		}
	}
	if len(args) == 2 {
		return args[0], args[1], true
	}
	return "", "", false
}
