package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/benvon/board-stats/internal/config"
	"github.com/benvon/board-stats/internal/services/board"
	"github.com/benvon/board-stats/internal/trello"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cliLogger logs to stderr in console format when debug is set
func cliLogger(debug bool, stderr io.Writer) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// loadClient builds a Trello client from the environment
func loadClient(log *zap.Logger) (*config.Config, *trello.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := trello.NewClient(cfg.TrelloAPIKey, cfg.TrelloAPIToken, cfg.TrelloBoardID,
		trello.WithBaseURL(cfg.TrelloBaseURL),
		trello.WithRateLimit(cfg.TrelloRequestsPerSecond, cfg.TrelloBurst),
		trello.WithConcurrency(cfg.FetchConcurrency),
		trello.WithLogger(log),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Trello client: %w", err)
	}
	return cfg, client, nil
}

// loadService builds the statistics service from the environment
func loadService(log *zap.Logger) (*board.Service, error) {
	cfg, client, err := loadClient(log)
	if err != nil {
		return nil, err
	}

	return board.NewService(client,
		board.WithConcurrency(cfg.FetchConcurrency),
		board.WithWindows(cfg.DailyWindowDays, cfg.WeeklyWindowWeeks),
		board.WithLogger(log),
	), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
