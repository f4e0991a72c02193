package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedGrid is returned when the grid is empty or not rectangular.
var ErrMalformedGrid = errors.New("malformed grid")

// ErrAdjacencyViolation is returned when a Soloon has no orthogonal Polyanet neighbour.
var ErrAdjacencyViolation = errors.New("soloon is not adjacent to any polyanet")

// ErrUnknownCell is returned when the grid contains a value outside the cell enumeration.
var ErrUnknownCell = errors.New("unknown cell value")

// ErrSizeMismatch is returned when the declared map size disagrees with the matrix.
var ErrSizeMismatch = errors.New("declared size does not match map")

// ErrInvalidAttribute is returned when a command carries a color or direction outside its enumeration.
var ErrInvalidAttribute = errors.New("invalid attribute")

// ErrUnsupportedCommand is returned when an (operation, entity) pair has no gateway operation.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrAbortedQueue is returned when a command exhausts its attempts and the remaining queue is dropped.
var ErrAbortedQueue = errors.New("command queue aborted")

// ErrMapNotFound is returned when a named map is missing from the configuration.
var ErrMapNotFound = errors.New("map not found")

// ErrLockHeld is returned when another run already holds the build lock.
var ErrLockHeld = errors.New("build lock already held")

// AdjacencyViolation reports the coordinate of the offending Soloon.
type AdjacencyViolation struct {
	Row    int
	Column int
}

func (e *AdjacencyViolation) Error() string {
	return fmt.Sprintf("%s at (%d, %d)", ErrAdjacencyViolation, e.Row, e.Column)
}

// Is lets errors.Is match the ErrAdjacencyViolation sentinel.
func (e *AdjacencyViolation) Is(target error) bool {
	return target == ErrAdjacencyViolation
}

// UnknownCellError reports a cell value the builder does not understand.
type UnknownCellError struct {
	Row    int
	Column int
	Value  Cell
}

func (e *UnknownCellError) Error() string {
	return fmt.Sprintf("%s %q at (%d, %d)", ErrUnknownCell, string(e.Value), e.Row, e.Column)
}

func (e *UnknownCellError) Is(target error) bool {
	return target == ErrUnknownCell
}

// GatewayError is the normalized failure of a single remote call.
// Status is zero when the request never got a response (transport error).
type GatewayError struct {
	Status  int
	Payload string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("status %d: %s", e.Status, msg)
	}
	if e.Payload != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Payload)
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
