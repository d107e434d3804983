package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNoActiveGames     = errors.New("no active games")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrSelfOpponent      = errors.New("cannot play against yourself")

	ErrInvalidMoveSyntax   = errors.New("move does not match the grammar")
	ErrAlreadyAttacked     = errors.New("cell was already attacked")
	ErrOutOfBounds         = errors.New("coordinates are out of bounds")
	ErrColumnFull          = errors.New("column is full")
	ErrInvalidColumn       = errors.New("invalid column index")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrSegmentNotFound     = errors.New("ship has no segment at this coordinate")
	ErrPlacementImpossible = errors.New("could not find a valid ship placement")
)
