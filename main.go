/* main.go
 * The "main" method for running the bot, the results webhook server and the scoring commands
 * Usage: go run . bot | serve | score --result 3:4 --predictions predictions.yaml | demo
 * Authors: Zachary Bower
 */

package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "score-pickems",
		Short:         "Score match predictions: 2 points for the exact score, 1 for the right result",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is loaded first so DEBUG can be set there
			envErr := godotenv.Load()
			setupLogging(debug || envBool("DEBUG"))
			if envErr != nil {
				log.Debug().Err(envErr).Msg("no .env file loaded, using environment")
			}
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(newBotCmd(), newServeCmd(), newScoreCmd(), newDemoCmd())
	return root
}

// setupLogging configures the global zerolog logger for console output
func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// envBool reads a boolean environment variable, treating anything invalid as false
func envBool(key string) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	b, err := convertStrToBool(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring invalid boolean environment variable")
		return false
	}
	return b
}
