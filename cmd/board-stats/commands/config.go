package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type effectiveConfig struct {
	BoardID           string  `json:"boardId"`
	HasAPIKey         bool    `json:"hasApiKey"`
	HasToken          bool    `json:"hasToken"`
	BaseURL           string  `json:"baseUrl"`
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Burst             int     `json:"burst"`
	FetchConcurrency  int     `json:"fetchConcurrency"`
	DailyWindowDays   int     `json:"dailyWindowDays"`
	WeeklyWindowWeeks int     `json:"weeklyWindowWeeks"`
	RateLimit         string  `json:"rateLimit"`
	RedisConfigured   bool    `json:"redisConfigured"`
}

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Show the configuration read from the environment. Credentials are reported as present or absent only.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadClient(zap.NewNop())
			if err != nil {
				return err
			}
			api := client.APIConfig()

			return printJSON(cmd.OutOrStdout(), effectiveConfig{
				BoardID:           api.BoardID,
				HasAPIKey:         api.HasAPIKey,
				HasToken:          api.HasToken,
				BaseURL:           cfg.TrelloBaseURL,
				RequestsPerSecond: cfg.TrelloRequestsPerSecond,
				Burst:             cfg.TrelloBurst,
				FetchConcurrency:  client.Concurrency(),
				DailyWindowDays:   cfg.DailyWindowDays,
				WeeklyWindowWeeks: cfg.WeeklyWindowWeeks,
				RateLimit:         cfg.RateLimit,
				RedisConfigured:   cfg.RedisURL != "",
			})
		},
	}
}
