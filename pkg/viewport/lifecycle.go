package viewport

import (
	"errors"
	"fmt"
	"sync"
)

// State is a viewer lifecycle state.
type State int

// Lifecycle states.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateInteractive
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateInteractive:
		return "interactive"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is matched by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// InvalidTransitionError reports a rejected transition.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition: %s -> %s", e.From, e.To)
}

// Is allows errors.Is(err, ErrInvalidTransition).
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// transitions lists the allowed moves. Error is terminal for a load
// attempt; a new attempt starts again from Loading.
var transitions = map[State][]State{
	StateIdle:    {StateLoading},
	StateLoading: {StateReady, StateError},
	StateReady:   {StateInteractive},
	StateError:   {StateLoading},
}

// Lifecycle tracks Idle -> Loading -> Ready -> Interactive, with
// Loading -> Error on failure. Resizes do not change the state.
type Lifecycle struct {
	mu    sync.Mutex
	state State
	err   error
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the error recorded by Fail, if the lifecycle is in Error.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Transition moves to the given state or returns an *InvalidTransitionError.
func (l *Lifecycle) Transition(to State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transition(to)
}

// Fail moves Loading -> Error and records cause.
func (l *Lifecycle) Fail(cause error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.transition(StateError); err != nil {
		return err
	}
	l.err = cause
	return nil
}

func (l *Lifecycle) transition(to State) error {
	for _, allowed := range transitions[l.state] {
		if allowed == to {
			l.state = to
			if to == StateLoading {
				l.err = nil
			}
			return nil
		}
	}
	return &InvalidTransitionError{From: l.state, To: to}
}
