package remote

import (
	"encoding/json"
	"time"
)

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	// server → client
	MessageTypeActionRequired MessageType = "action_required"
	MessageTypeEvent          MessageType = "event"
	MessageTypeError          MessageType = "error"
	MessageTypeTimeout        MessageType = "timeout"

	// client → server
	MessageTypeAction MessageType = "action"
)

// Message is the websocket envelope in both directions
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage encodes data into an envelope stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: messageType, Data: dataBytes, Timestamp: now}, nil
}

// ActionRequiredData asks the client to act
type ActionRequiredData struct {
	HandID        string   `json:"handId"`
	Street        string   `json:"street"`
	HoleCards     []string `json:"holeCards"`
	Board         []string `json:"board"`
	Pot           int      `json:"pot"`
	Chips         int      `json:"chips"`
	Bet           int      `json:"bet"`
	OpponentChips int      `json:"opponentChips"`
	OpponentBet   int      `json:"opponentBet"`
	ToCall        int      `json:"toCall"`
	MinRaise      int      `json:"minRaise"`
	Legal         []string `json:"legal"`
	Retry         string   `json:"retry,omitempty"`
	TimeoutSecs   int      `json:"timeoutSeconds,omitempty"`
}

// EventData is a rendered game event
type EventData struct {
	Event string `json:"event"`
	Text  string `json:"text"`
}

// ErrorData reports a rejected client message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TimeoutData reports the decision taken on the player's behalf
type TimeoutData struct {
	Action string `json:"action"`
}

// ActionData is the client's decision. Amount is only read for raises.
type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}
