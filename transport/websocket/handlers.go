package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// decodePayload - every action except connect needs a player id.
func decodePayload(msg *Message, needPlayer bool) (Payload, error) {
	var payload Payload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return payload, err
		}
	}

	if needPlayer && (payload.Player == nil || payload.Player.ID == "") {
		return payload, apperror.ErrInvalidPlayer
	}

	return payload, nil
}

func (that *Server) handleConnect(ctx context.Context, msg *Message) Payload {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg, false)
	if err != nil {
		return errorPayload("invalid payload")
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return errorPayload("failed to get player")
	}

	log.Info("player connected", "playerID", player.ID)

	return Payload{Player: player}
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message) Payload {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg, true)
	if err != nil {
		return errorPayload(err.Error())
	}

	engineFirst := that.engineFirst
	if payloadReq.EngineFirst != nil {
		engineFirst = *payloadReq.EngineFirst
	}

	game, err := that.gameUseCase.NewGame(ctx, payloadReq.Player.ID, engineFirst)
	if err != nil {
		log.Error("failed to create game", "playerID", payloadReq.Player.ID, "error", err)
		return errorPayload("failed to create a new game")
	}

	return Payload{Player: payloadReq.Player, Game: maskGameDetails(game)}
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message) Payload {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg, true)
	if err != nil {
		return errorPayload(err.Error())
	}

	if payloadReq.Cell == nil {
		return errorPayload("cell is required")
	}

	log = log.With("playerID", payloadReq.Player.ID, "cell", *payloadReq.Cell)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	switch {
	case errors.Is(err, apperror.ErrGameFinished) && game != nil:
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
		return Payload{Player: payloadReq.Player, Game: maskGameDetails(game)}
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, entity.ErrInvalidCell),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNoActiveGame):
		return errorPayload(rootMessage(err))
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return errorPayload("failed to make turn")
	}

	return Payload{Player: payloadReq.Player, Game: maskGameDetails(game)}
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message) Payload {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg, true)
	if err != nil {
		return errorPayload(err.Error())
	}

	game, err := that.gameUseCase.LeaveGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to leave game", "playerID", payloadReq.Player.ID, "error", err)
		return errorPayload("game doesn't exist")
	}

	log.Info("player left", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return Payload{Player: payloadReq.Player, Game: maskGameDetails(game)}
}

// rootMessage - text of the innermost sentinel, hides the wrapping context from clients.
func rootMessage(err error) string {
	for _, target := range []error{
		apperror.ErrCellOccupied,
		entity.ErrInvalidCell,
		apperror.ErrNotYourTurn,
		apperror.ErrNoActiveGame,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return err.Error()
}

// maskGameDetails hides internal details from the game payload.
func maskGameDetails(game *entity.Game) *entity.Game {
	masked := *game
	masked.Players = nil

	return &masked
}
