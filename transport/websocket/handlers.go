package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

func (that *Server) handleConnect(_ context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleConnect", "session", sess.id)

	if err := sess.sendState(actionState); err != nil {
		return fmt.Errorf("failed to send response to %s: %w", msg.Action, err)
	}

	log.Info("screen connected")

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "session", sess.id)

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return sess.sendErrorResponse(msg.Action, "invalid payload")
	}

	if payloadReq.Cell == nil {
		log.Warn("Cell is missing in payload")
		return sess.sendErrorResponse(msg.Action, "Cell is required")
	}

	err := sess.screen.Tap(ctx, *payloadReq.Cell)
	if errors.Is(err, apperror.ErrInvalidCell) {
		return sess.sendErrorResponse(msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to make turn", "error", err)
		return sess.sendErrorResponse(msg.Action, "failed to make turn")
	}

	return sess.sendState(actionState)
}

func (that *Server) handleGameReload(ctx context.Context, sess *session, _ *Message) error {
	that.logger.Debug("reload requested", "session", sess.id)

	sess.screen.Reload(ctx)

	return sess.sendState(actionState)
}
