package domain

import (
	"fmt"
	"strconv"
)

type TargetType string

const (
	TargetSubmission TargetType = "submission"
	TargetComment    TargetType = "comment"
)

func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetSubmission, TargetComment:
		return TargetType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTargetType, s)
}

// VoteState holds the two arrow flags of a widget. At most one of them is set.
type VoteState struct {
	Upvoted   bool `json:"upvoted"`
	Downvoted bool `json:"downvoted"`
}

type StateKind string

const (
	StateNone      StateKind = "none"
	StateUpvoted   StateKind = "upvoted"
	StateDownvoted StateKind = "downvoted"
)

func (s VoteState) Valid() bool {
	return !(s.Upvoted && s.Downvoted)
}

func (s VoteState) Kind() StateKind {
	switch {
	case s.Upvoted:
		return StateUpvoted
	case s.Downvoted:
		return StateDownvoted
	default:
		return StateNone
	}
}

func StateOf(kind StateKind) VoteState {
	return VoteState{
		Upvoted:   kind == StateUpvoted,
		Downvoted: kind == StateDownvoted,
	}
}

type VoteWidget struct {
	TargetID   string     `json:"target_id"`
	TargetType TargetType `json:"target_type"`
	State      VoteState  `json:"state"`
	Score      int        `json:"score"`
}

// Key identifies a widget within a rendered page.
func (w VoteWidget) Key() string {
	return WidgetKey(w.TargetType, w.TargetID)
}

func WidgetKey(t TargetType, id string) string {
	return string(t) + ":" + id
}

func (w VoteWidget) Validate() error {
	if _, err := ParseTargetType(string(w.TargetType)); err != nil {
		return err
	}
	if _, err := strconv.ParseUint(w.TargetID, 10, 64); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTargetID, w.TargetID)
	}
	if !w.State.Valid() {
		return ErrInconsistentWidget
	}
	return nil
}

// Apply returns the widget after a confirmed vote: flags go through
// Transition and the displayed score accumulates the server delta.
func (w VoteWidget) Apply(intent Intent, delta ScoreDelta) VoteWidget {
	w.State = Transition(w.State, intent)
	w.Score += int(delta)
	return w
}
