package models

// Board represents a Trello board
type Board struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc,omitempty"`
	URL    string `json:"url,omitempty"`
	Closed bool   `json:"closed"`
}

// List represents a column on a board
type List struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	IDBoard string  `json:"idBoard,omitempty"`
	Closed  bool    `json:"closed"`
	Pos     float64 `json:"pos,omitempty"`
}

// Card represents a card inside a list
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IDList   string `json:"idList,omitempty"`
	IDBoard  string `json:"idBoard,omitempty"`
	Closed   bool   `json:"closed"`
	ShortURL string `json:"shortUrl,omitempty"`
}

// ActionTypeCommentCard is the action type Trello records for card comments
const ActionTypeCommentCard = "commentCard"

// ActionData holds the payload of an action. Only comment text is used.
type ActionData struct {
	Text string `json:"text,omitempty"`
}

// Action represents a card action (comments, moves, ...)
type Action struct {
	ID   string     `json:"id"`
	Type string     `json:"type"`
	Date string     `json:"date"` // ISO-8601 timestamp as returned by the API
	Data ActionData `json:"data"`
}

// CardWithActions is a card together with its comment actions
type CardWithActions struct {
	Card
	Actions []Action `json:"actions"`
}

// ListWithCards is a list together with its cards
type ListWithCards struct {
	List
	Cards []Card `json:"cards"`
}

// APIConfig describes the adapter configuration without exposing credentials
type APIConfig struct {
	BoardID   string `json:"boardId"`
	HasAPIKey bool   `json:"hasApiKey"`
	HasToken  bool   `json:"hasToken"`
}
