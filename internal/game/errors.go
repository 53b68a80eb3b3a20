package game

import "errors"

// Gameplay errors are recoverable: the rejected action leaves the state unchanged.
var (
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidMove           = errors.New("invalid move")
	ErrCodeNotLearned        = errors.New("code not learned")
	ErrNotActive             = errors.New("not the active virologist")
	ErrAlreadyMoved          = errors.New("already moved this turn")
	ErrStunned               = errors.New("virologist is stunned")
	ErrNotStunned            = errors.New("target is not stunned")
	ErrEliminated            = errors.New("virologist is eliminated")
	ErrGameOver              = errors.New("game is over")
	ErrGearOwned             = errors.New("gear already owned")
	ErrTargetNotReachable    = errors.New("target not on the same field")
	ErrNoSuchAgent           = errors.New("no such crafted agent")
	ErrUnknownName           = errors.New("unknown name")
	ErrNoAxe                 = errors.New("no axe")
	ErrNotBear               = errors.New("target is not a bear")
)

// ErrGraphConstruction marks malformed setup data. It is fatal at load time.
var ErrGraphConstruction = errors.New("graph construction error")
