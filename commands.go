/* commands.go
 * Contains the sub commands of the cli: bot, serve, score and demo
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"score-pickems/api/api"
	"score-pickems/api/scoring"
	"score-pickems/bot"
	"score-pickems/web"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// dbFlags are shared by the commands that need the database
type dbFlags struct {
	dbName   string
	mongoURI string
}

func (f *dbFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dbName, "db", "", "Database name (default $DB_NAME or score_pickems)")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection string (default $MONGO_URI)")
}

// connect resolves the flags against the environment and creates the API
func (f *dbFlags) connect() (*api.API, error) {
	dbName := firstNonEmpty(f.dbName, os.Getenv("DB_NAME"), "score_pickems")
	mongoURI := firstNonEmpty(f.mongoURI, os.Getenv("MONGO_URI"))

	a, err := api.NewAPI(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API: %w", err)
	}
	log.Info().Str("db", dbName).Msg("connected to database")
	return a, nil
}

// disconnect closes the db connection when the command exits
func disconnect(a *api.API) {
	if err := a.Store.GetClient().Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from database")
	}
}

func newBotCmd() *cobra.Command {
	var db dbFlags
	var token, admins string

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			token = firstNonEmpty(token, os.Getenv("DISCORD_TOKEN"))
			adminIDs := parseList(firstNonEmpty(admins, os.Getenv("ADMIN_IDS")))

			a, err := db.connect()
			if err != nil {
				return err
			}
			defer disconnect(a)

			b, err := bot.NewBot(token, a, adminIDs)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return b.Run(ctx)
		},
	}

	db.register(cmd)
	cmd.Flags().StringVar(&token, "token", "", "Discord bot token (default $DISCORD_TOKEN)")
	cmd.Flags().StringVar(&admins, "admins", "", "Comma separated Discord user ids allowed to add matches and results (default $ADMIN_IDS)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var db dbFlags
	var addr, secret string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the results webhook and scoring HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := db.connect()
			if err != nil {
				return err
			}
			defer disconnect(a)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := web.Config{
				Addr:   firstNonEmpty(addr, os.Getenv("ADDR"), ":8080"),
				API:    a,
				Secret: firstNonEmpty(secret, os.Getenv("WEBHOOK_SECRET")),
			}
			if cfg.Secret == "" {
				log.Warn().Msg("no webhook secret configured, the result webhook will reject every request")
			}
			return web.Start(ctx, cfg)
		},
	}

	db.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $ADDR or :8080)")
	cmd.Flags().StringVar(&secret, "secret", "", "Webhook secret (default $WEBHOOK_SECRET)")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var result, predictionsPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a file of predictions (YAML or JSON map of user: \"home:away\") against a result",
		RunE: func(cmd *cobra.Command, args []string) error {
			predictions, err := readPredictions(predictionsPath)
			if err != nil {
				return err
			}
			points, err := scoring.CalculatePoints(predictions, result)
			if err != nil {
				return err
			}
			return writePoints(cmd.OutOrStdout(), points)
		},
	}

	cmd.Flags().StringVar(&result, "result", "", "Actual result in home:away format")
	cmd.Flags().StringVar(&predictionsPath, "predictions", "", "Path to the predictions file")
	_ = cmd.MarkFlagRequired("result")
	_ = cmd.MarkFlagRequired("predictions")
	return cmd
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Score the sample predictions against a 3:4 result",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := scoring.CalculatePoints(demoPredictions(), demoResult)
			if err != nil {
				return err
			}
			return writePoints(cmd.OutOrStdout(), points)
		},
	}
}

const demoResult = "3:4"

func demoPredictions() map[string]string {
	return map[string]string{
		"user1": "3:2",
		"user2": "1:0",
		"user3": "2:3",
		"user4": "3:4",
	}
}

// readPredictions decodes a predictions file. yaml.v3 also accepts JSON so either format works
func readPredictions(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictions: %w", err)
	}

	var predictions map[string]string
	if err := yaml.Unmarshal(data, &predictions); err != nil {
		return nil, fmt.Errorf("failed to parse predictions %s: %w", path, err)
	}
	if predictions == nil {
		predictions = map[string]string{}
	}
	return predictions, nil
}

// writePoints writes the points as indented JSON, map keys are sorted by encoding/json
func writePoints(w io.Writer, points map[string]int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(points)
}
