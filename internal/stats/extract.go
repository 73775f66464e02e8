package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benvon/board-stats/internal/models"
)

// DoneMarker is the comment text that marks a card as completed
const DoneMarker = "Done!"

// ErrInvalidActionDate is returned when a completion comment carries a date
// that is not an ISO-8601 timestamp
var ErrInvalidActionDate = errors.New("invalid action date")

// accepted ISO-8601 forms; RFC3339 parsing also accepts fractional seconds
var actionDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CompletionEvent is a single "Done!" comment attributed to an owner
type CompletionEvent struct {
	Owner Owner
	Label string // name of the list the card was found in
	At    time.Time
}

// ParseDoneDate returns the timestamp of a completion comment.
// ok is false when the action is not a completion comment. A completion
// comment with an unparseable date is an error, never silently skipped.
func ParseDoneDate(action models.Action) (at time.Time, ok bool, err error) {
	if !strings.Contains(action.Data.Text, DoneMarker) {
		return time.Time{}, false, nil
	}

	at, err = parseActionDate(action.Date)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: action %s: %q", ErrInvalidActionDate, action.ID, action.Date)
	}
	return at, true, nil
}

func parseActionDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range actionDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ExtractCompletion builds a CompletionEvent from an action found on a card in
// the list named label
func ExtractCompletion(label string, action models.Action) (CompletionEvent, bool, error) {
	at, ok, err := ParseDoneDate(action)
	if err != nil || !ok {
		return CompletionEvent{}, false, err
	}
	return CompletionEvent{
		Owner: Classify(label).Owner,
		Label: label,
		At:    at,
	}, true, nil
}

// ExtractCompletions scans all actions of a card and returns the completion
// events among them
func ExtractCompletions(label string, actions []models.Action) ([]CompletionEvent, error) {
	var events []CompletionEvent
	for _, action := range actions {
		event, ok, err := ExtractCompletion(label, action)
		if err != nil {
			return nil, err
		}
		if ok {
			events = append(events, event)
		}
	}
	return events, nil
}
