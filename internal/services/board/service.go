package board

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/board-stats/internal/models"
	"github.com/benvon/board-stats/internal/stats"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDailyWindowDays is how far back the daily report looks
	DefaultDailyWindowDays = 30
	// DefaultWeeklyWindowWeeks is how far back the weekly report looks
	DefaultWeeklyWindowWeeks = 12
	// DefaultConcurrency caps parallel requests within one fan-out level
	DefaultConcurrency = 8

	tracerName = "github.com/benvon/board-stats/internal/services/board"
)

// Source is the subset of the Trello API the service reads from
type Source interface {
	BoardLists(ctx context.Context) ([]models.List, error)
	ListCards(ctx context.Context, listID string) ([]models.Card, error)
	CardActions(ctx context.Context, cardID string) ([]models.Action, error)
}

// Service computes board statistics. It keeps no state between calls;
// every call refetches from the source.
type Service struct {
	source      Source
	concurrency int
	dailyDays   int
	weeklyWeeks int
	now         func() time.Time
	logger      *zap.Logger
	tracer      trace.Tracer
}

// Option configures a Service
type Option func(*Service)

// WithConcurrency caps the number of in-flight source requests per level
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithWindows overrides the default daily and weekly lookback windows
func WithWindows(days, weeks int) Option {
	return func(s *Service) {
		if days > 0 {
			s.dailyDays = days
		}
		if weeks > 0 {
			s.weeklyWeeks = weeks
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a statistics service reading from source
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:      source,
		concurrency: DefaultConcurrency,
		dailyDays:   DefaultDailyWindowDays,
		weeklyWeeks: DefaultWeeklyWindowWeeks,
		now:         time.Now,
		logger:      zap.NewNop(),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Windows returns the configured default lookback windows
func (s *Service) Windows() (days, weeks int) {
	return s.dailyDays, s.weeklyWeeks
}

// DoneTasks counts done and pending cards per owner from the current lists
func (s *Service) DoneTasks(ctx context.Context) (summary models.TaskSummary, err error) {
	ctx, span := s.tracer.Start(ctx, "board.DoneTasks")
	defer func() { endSpan(span, err) }()

	lists, err := s.source.BoardLists(ctx)
	if err != nil {
		return models.TaskSummary{}, fmt.Errorf("failed to fetch board lists: %w", err)
	}

	// lists that cannot contribute to any counter are not fetched
	var relevant []models.List
	for _, l := range lists {
		c := stats.Classify(l.Name)
		if c.Owner != stats.OwnerUnknown && (c.Done || c.Pending) {
			relevant = append(relevant, l)
		}
	}

	counts := make([]stats.ListCount, len(relevant))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, l := range relevant {
		g.Go(func() error {
			cards, err := s.source.ListCards(gctx, l.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch cards for list %s: %w", l.ID, err)
			}
			counts[i] = stats.ListCount{Label: l.Name, Cards: len(cards)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.TaskSummary{}, err
	}

	summary = stats.Summarize(counts)
	s.logger.Debug("done_tasks_computed",
		zap.Int("lists", len(lists)),
		zap.Int("relevant_lists", len(relevant)),
		zap.Int("total_done", summary.Total.Done),
		zap.Int("total_pending", summary.Total.Pending),
	)
	return summary, nil
}

// DailyStats buckets completions of the last days days by date.
// A non-positive days uses the configured default.
func (s *Service) DailyStats(ctx context.Context, days int) (series models.Series, err error) {
	ctx, span := s.tracer.Start(ctx, "board.DailyStats")
	defer func() { endSpan(span, err) }()

	if days <= 0 {
		days = s.dailyDays
	}
	span.SetAttributes(attribute.Int("window.days", days))

	events, err := s.CompletionEvents(ctx)
	if err != nil {
		return nil, err
	}
	return stats.DailySeries(events, s.now(), days), nil
}

// WeeklyStats buckets completions of the last weeks weeks by ISO week.
// A non-positive weeks uses the configured default.
func (s *Service) WeeklyStats(ctx context.Context, weeks int) (series models.Series, err error) {
	ctx, span := s.tracer.Start(ctx, "board.WeeklyStats")
	defer func() { endSpan(span, err) }()

	if weeks <= 0 {
		weeks = s.weeklyWeeks
	}
	span.SetAttributes(attribute.Int("window.weeks", weeks))

	events, err := s.CompletionEvents(ctx)
	if err != nil {
		return nil, err
	}
	return stats.WeeklySeries(events, s.now(), weeks), nil
}

// Statistics computes the daily and weekly series from a single fetch
func (s *Service) Statistics(ctx context.Context) (result models.Statistics, err error) {
	ctx, span := s.tracer.Start(ctx, "board.Statistics")
	defer func() { endSpan(span, err) }()

	events, err := s.CompletionEvents(ctx)
	if err != nil {
		return models.Statistics{}, err
	}
	now := s.now()
	return models.Statistics{
		Daily:  stats.DailySeries(events, now, s.dailyDays),
		Weekly: stats.WeeklySeries(events, now, s.weeklyWeeks),
	}, nil
}

type doneCard struct {
	label  string
	cardID string
}

// CompletionEvents collects every "Done!" comment on cards in done lists.
// Fetches run in two bounded levels (cards per list, then actions per card);
// the first failure cancels the level and aborts the call.
func (s *Service) CompletionEvents(ctx context.Context) ([]stats.CompletionEvent, error) {
	lists, err := s.source.BoardLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board lists: %w", err)
	}

	var doneLists []models.List
	for _, l := range lists {
		if stats.Classify(l.Name).Done {
			doneLists = append(doneLists, l)
		}
	}

	cardsPerList := make([][]doneCard, len(doneLists))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, l := range doneLists {
		g.Go(func() error {
			cards, err := s.source.ListCards(gctx, l.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch cards for list %s: %w", l.ID, err)
			}
			found := make([]doneCard, len(cards))
			for j, c := range cards {
				found[j] = doneCard{label: l.Name, cardID: c.ID}
			}
			cardsPerList[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var cards []doneCard
	for _, found := range cardsPerList {
		cards = append(cards, found...)
	}

	eventsPerCard := make([][]stats.CompletionEvent, len(cards))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, c := range cards {
		g.Go(func() error {
			actions, err := s.source.CardActions(gctx, c.cardID)
			if err != nil {
				return fmt.Errorf("failed to fetch actions for card %s: %w", c.cardID, err)
			}
			events, err := stats.ExtractCompletions(c.label, actions)
			if err != nil {
				return fmt.Errorf("card %s: %w", c.cardID, err)
			}
			eventsPerCard[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []stats.CompletionEvent
	for _, e := range eventsPerCard {
		events = append(events, e...)
	}

	s.logger.Debug("completion_events_collected",
		zap.Int("done_lists", len(doneLists)),
		zap.Int("cards", len(cards)),
		zap.Int("events", len(events)),
	)
	return events, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
