package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
)

var ErrEngineNoMove = errors.New("engine found no move")

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type engine interface {
	Mark() entity.Mark
	BestMove(board *entity.Board) int
}

// GameManager - drives a human versus engine game: human move, verdict, engine reply, verdict.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	engine     engine
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, engine engine) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		engine:     engine,
	}
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// NewGame - returns the player's game in progress or starts a new one.
func (that *GameManager) NewGame(ctx context.Context, playerID string, engineFirst bool) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.HasGame() {
		existingGame, err := that.getGameByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		// the game key expired, start over
		that.logger.Warn("player game is gone", "playerID", player.ID, "gameID", player.GameID, "error", err)
	}

	game, err := that.createGame(ctx, player, engineFirst)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !player.HasGame() {
		return nil, apperror.ErrNoActiveGame
	}

	return that.getGameByID(ctx, player.GameID)
}

// MakeTurn - plays the human's cell and, if the game goes on, the engine's answer.
// A finished game is returned together with apperror.ErrGameFinished.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, fmt.Errorf("game %s: %w", game.ID, err)
	}

	if err = game.MakeTurn(game.PlayerMark, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
		return game, apperror.ErrGameFinished
	}

	if err = that.engineTurn(game, log); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
		return game, apperror.ErrGameFinished
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// LeaveGame - abandons the player's current game.
func (that *GameManager) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.finishGame(ctx, game)

	return game, nil
}

func (that *GameManager) engineTurn(game *entity.Game, log *slog.Logger) error {
	move := that.engine.BestMove(&game.Board)
	if move < 0 {
		return fmt.Errorf("%w: game %s", ErrEngineNoMove, game.ID)
	}

	if err := game.MakeTurn(game.EngineMark, move); err != nil {
		return fmt.Errorf("engine failed to make turn: %w", err)
	}

	log.Debug("engine moved", "gameID", game.ID, "cell", move, "board", game.Board.String())

	return nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, engineFirst bool) (*entity.Game, error) {
	log := that.logger.With("method", "createGame", "playerID", player.ID)

	game := entity.NewGame(pkg.GenerateGameID(), that.engine.Mark(), engineFirst)

	if game.IsEngineTurn() {
		if err := that.engineTurn(game, log); err != nil {
			return nil, err
		}
	}

	player.GameID = game.ID
	player.Mark = game.PlayerMark
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	game.Players = []*entity.Player{player}
	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game created", "gameID", game.ID, "engineMark", game.EngineMark)

	return game, nil
}

// finishGame - drops the game from storage and frees the player, no history is kept.
func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		player.Mark = entity.Empty
		player.GameID = ""

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "error", err)
		}
	}

	log.Info("game finished", "winner", game.Winner, "status", game.Status)
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return nil, apperror.ErrInvalidPlayer
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
