package trello

import (
	"context"
	"net/url"

	"github.com/benvon/board-stats/internal/models"
	"golang.org/x/sync/errgroup"
)

// Board returns board information
func (c *Client) Board(ctx context.Context) (*models.Board, error) {
	var board models.Board
	if err := c.get(ctx, "board", "/boards/"+url.PathEscape(c.boardID), nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// BoardLists returns all lists (columns) on the board
func (c *Client) BoardLists(ctx context.Context) ([]models.List, error) {
	var lists []models.List
	if err := c.get(ctx, "board_lists", "/boards/"+url.PathEscape(c.boardID)+"/lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// BoardCards returns the cards of the board matching filter
// (open, closed, all, ...). An empty filter means all.
func (c *Client) BoardCards(ctx context.Context, filter string) ([]models.Card, error) {
	if filter == "" {
		filter = "all"
	}
	var cards []models.Card
	query := url.Values{"filter": {filter}}
	if err := c.get(ctx, "board_cards", "/boards/"+url.PathEscape(c.boardID)+"/cards", query, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// List returns a single list by id
func (c *Client) List(ctx context.Context, listID string) (*models.List, error) {
	var list models.List
	if err := c.get(ctx, "list", "/lists/"+url.PathEscape(listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListCards returns the cards in a list
func (c *Client) ListCards(ctx context.Context, listID string) ([]models.Card, error) {
	var cards []models.Card
	if err := c.get(ctx, "list_cards", "/lists/"+url.PathEscape(listID)+"/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Card returns a single card by id
func (c *Client) Card(ctx context.Context, cardID string) (*models.Card, error) {
	var card models.Card
	if err := c.get(ctx, "card", "/cards/"+url.PathEscape(cardID), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// CardActions returns the comment actions of a card
func (c *Client) CardActions(ctx context.Context, cardID string) ([]models.Action, error) {
	var actions []models.Action
	query := url.Values{"filter": {models.ActionTypeCommentCard}}
	if err := c.get(ctx, "card_actions", "/cards/"+url.PathEscape(cardID)+"/actions", query, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// CardsWithActions returns the cards of a list, each with its comment
// actions. Actions are fetched concurrently; the first failure cancels the
// rest and is returned.
func (c *Client) CardsWithActions(ctx context.Context, listID string) ([]models.CardWithActions, error) {
	cards, err := c.ListCards(ctx, listID)
	if err != nil {
		return nil, err
	}

	result := make([]models.CardWithActions, len(cards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, card := range cards {
		g.Go(func() error {
			actions, err := c.CardActions(gctx, card.ID)
			if err != nil {
				return err
			}
			result[i] = models.CardWithActions{Card: card, Actions: actions}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListsWithCards fetches list information and cards for every id
// concurrently. Results keep the order of listIDs.
func (c *Client) ListsWithCards(ctx context.Context, listIDs []string) ([]models.ListWithCards, error) {
	result := make([]models.ListWithCards, len(listIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range listIDs {
		g.Go(func() error {
			list, err := c.List(gctx, id)
			if err != nil {
				return err
			}
			cards, err := c.ListCards(gctx, id)
			if err != nil {
				return err
			}
			result[i] = models.ListWithCards{List: *list, Cards: cards}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// APIConfig describes the client configuration without exposing secrets
func (c *Client) APIConfig() models.APIConfig {
	return models.APIConfig{
		BoardID:   c.boardID,
		HasAPIKey: c.apiKey != "",
		HasToken:  c.apiToken != "",
	}
}

// Ping verifies the credentials by fetching the board
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Board(ctx)
	return err
}
