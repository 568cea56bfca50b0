package monitor

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange     = errors.New("monitor index out of range")
	ErrLastMonitor    = errors.New("can't remove the last monitor")
	ErrNameCollision  = errors.New("monitor name already in use")
	ErrInvalidName    = fmt.Errorf("%w: names must not start with a digit", ErrNameCollision)
	ErrNoFreeTag      = errors.New("no unused tag available")
	ErrTagInUse       = errors.New("tag is already shown on a monitor")
	ErrLocked         = errors.New("monitor tag is locked")
	ErrCollision      = errors.New("tag is shown on another monitor")
	ErrInvalidTag     = errors.New("invalid tag")
	ErrInvalidMonitor = errors.New("invalid monitor")
	ErrNoRects        = errors.New("at least one rectangle is required")
	ErrTooSmall       = errors.New("monitor rectangle is too small")
)
