package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	actionConnect = "connect"
	actionTurn    = "game:turn"
	actionReload  = "game:reload"
	actionState   = "screen:state"
	actionToast   = "toast"
	actionSound   = "sound"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - body of both requests and responses; unused fields are omitted.
type Payload struct {
	Session string        `json:"session,omitempty"`
	Cell    *int          `json:"cell,omitempty"`
	View    *usecase.View `json:"view,omitempty"`
	Toast   *entity.Toast `json:"toast,omitempty"`
	Cue     entity.Cue    `json:"cue,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (that *session) sendMessage(action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadJSON,
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write %s message: %w", action, err)
	}

	return nil
}

func (that *session) sendErrorResponse(action, errMsg string) error {
	return that.sendMessage(action, Payload{Error: errMsg})
}

func (that *session) sendState(action string) error {
	view := that.screen.View()
	return that.sendMessage(action, Payload{Session: that.id, View: &view})
}

func (that *session) ping() error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	return that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
