package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ActionConnect = "connect"
	ActionNewGame = "game:new"
	ActionTurn    = "game:turn"
	ActionLeave   = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player      *entity.Player `json:"player,omitempty"`
	Game        *entity.Game   `json:"game,omitempty"`
	Cell        *int           `json:"cell,omitempty"`
	EngineFirst *bool          `json:"engine_first,omitempty"`
	Error       string         `json:"error,omitempty"`
}

func (that *Server) send(conn *websocket.Conn, action string, payload Payload) {
	log := that.logger.With("method", "send", "action", action)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		log.Error("failed to write message", "error", err)
	}
}

func errorPayload(msg string) Payload {
	return Payload{Error: msg}
}
