package stopid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnclassifiedStopCode is returned when no rule classifies a stop code.
	ErrUnclassifiedStopCode = errors.New("unclassified stop code")
	// ErrStopIDCollision is returned when two stops of one snapshot share an id.
	ErrStopIDCollision = errors.New("stop id collision")
)

// Stage names the classification step that gave up.
type Stage string

const (
	StageNumeric  Stage = "numeric"
	StageLocality Stage = "locality"
	StagePrefix   Stage = "starts with"
	StageSuffix   Stage = "ends with"
)

// UnclassifiedStopCodeError carries the raw stop that could not be classified.
type UnclassifiedStopCodeError struct {
	Stop  Stop
	Code  string // effective code after prefix stripping
	Stage Stage
}

func (e *UnclassifiedStopCodeError) Error() string {
	return fmt.Sprintf("unexpected stop ID (%s) %q for stop {id=%q code=%q name=%q}",
		e.Stage, e.Code, e.Stop.ID, e.Stop.Code, e.Stop.Name)
}

func (e *UnclassifiedStopCodeError) Unwrap() error { return ErrUnclassifiedStopCode }

// CollisionError reports two raw stops mapped to the same id.
type CollisionError struct {
	ID     ID
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("stop id %d assigned to both %q and %q", e.ID, e.First, e.Second)
}

func (e *CollisionError) Unwrap() error { return ErrStopIDCollision }
