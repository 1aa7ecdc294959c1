package activity

import (
	"errors"
	"fmt"

	"github.com/udisondev/cubesim/internal/geo"
)

var (
	// ErrNotAble is returned when an activity is requested while the unit's
	// current state does not allow it.
	ErrNotAble = errors.New("unit is not able to perform activity")

	// ErrBusy is returned when the current activity refuses to yield to the
	// requested one. It matches ErrNotAble.
	ErrBusy = fmt.Errorf("%w: current activity cannot be preempted", ErrNotAble)

	// ErrInvalidSprint is returned when sprinting is enabled without enough
	// stamina or while the unit is not moving.
	ErrInvalidSprint = errors.New("invalid sprint request")

	// ErrStopped is reported to finish listeners when an activity was stopped
	// by another one before it completed.
	ErrStopped = errors.New("activity stopped before completion")

	// ErrDisplaced is reported when the unit was moved by an outside force
	// (a dodge) while walking, which invalidates the current step.
	ErrDisplaced = errors.New("unit displaced during movement")

	ErrInvalidPosition = geo.ErrInvalidPosition
	ErrPathNotFound    = geo.ErrPathNotFound
)
