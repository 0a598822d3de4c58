package game

import (
	"fmt"

	"github.com/pkg/errors"
)

type InvalidMoveError struct {
	Action string
}

func (e InvalidMoveError) Error() string {
	return fmt.Sprintf("Invalid move action: %s (want hit or stand)", e.Action)
}

type RoundInProgressError struct {
	TableCode string
}

func (e RoundInProgressError) Error() string {
	return fmt.Sprintf("Table %s already has a round in progress", e.TableCode)
}

func IsRoundInProgress(err error) bool {
	_, ok := errors.Cause(err).(RoundInProgressError)
	return ok
}

type NoHumanSeatError struct {
	TableCode string
}

func (e NoHumanSeatError) Error() string {
	return fmt.Sprintf("Table %s has no human seat", e.TableCode)
}

func IsNoHumanSeat(err error) bool {
	_, ok := errors.Cause(err).(NoHumanSeatError)
	return ok
}

type UnknownTableError struct {
	TableCode string
}

func (e UnknownTableError) Error() string {
	return fmt.Sprintf("Unknown table: %s", e.TableCode)
}

type MoveAlreadyPendingError struct {
	Position string
}

func (e MoveAlreadyPendingError) Error() string {
	return fmt.Sprintf("A move for %s is already pending", e.Position)
}

type TableExistsError struct {
	TableCode string
}

func (e TableExistsError) Error() string {
	return fmt.Sprintf("Table %s already exists", e.TableCode)
}
