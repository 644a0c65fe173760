package domain

import (
	"fmt"
	"strings"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection accepts the short names and the button titles used by the
// forum markup ("upvote", "downvote").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "upvote":
		return DirectionUp, nil
	case "down", "downvote":
		return DirectionDown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) Intent() (Intent, error) {
	switch d {
	case DirectionUp:
		return IntentUp, nil
	case DirectionDown:
		return IntentDown, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, string(d))
}

// Intent is the signed vote value sent to the backend. Zero is only ever
// reported back by the backend, when it refuses a vote on one's own post.
type Intent int

const (
	IntentDown Intent = -1
	IntentZero Intent = 0
	IntentUp   Intent = 1
)

func (i Intent) Valid() bool {
	return i >= IntentDown && i <= IntentUp
}

// ScoreDelta is the server-authoritative change of a displayed score.
type ScoreDelta int

// Transition is the complete state table for a confirmed vote.
func Transition(s VoteState, intent Intent) VoteState {
	switch intent {
	case IntentDown:
		return VoteState{Downvoted: !s.Downvoted}
	case IntentUp:
		return VoteState{Upvoted: !s.Upvoted}
	default:
		return VoteState{}
	}
}

// Confirmation is a vote the backend accepted: the intent it recorded and
// the score delta it reported.
type Confirmation struct {
	Intent Intent
	Delta  ScoreDelta
}

func (c Confirmation) Apply(w VoteWidget) VoteWidget {
	return w.Apply(c.Intent, c.Delta)
}
