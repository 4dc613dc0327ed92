package models

import (
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

type Turn struct {
	Role types.TurnRole `json:"role"`
	Text string         `json:"text"`
	At   time.Time      `json:"at"`
}

// Conversation is an append-only list of turns. Append never touches the
// receiver's backing array, so earlier values stay valid after a new turn.
type Conversation struct {
	turns []Turn
}

func NewConversation(turns ...Turn) Conversation {
	return Conversation{turns: append([]Turn(nil), turns...)}
}

func (c Conversation) Append(role types.TurnRole, text string, at time.Time) Conversation {
	turns := make([]Turn, len(c.turns), len(c.turns)+1)
	copy(turns, c.turns)
	return Conversation{turns: append(turns, Turn{Role: role, Text: text, At: at})}
}

func (c Conversation) Len() int {
	return len(c.turns)
}

// Turns returns a copy of every turn, oldest first.
func (c Conversation) Turns() []Turn {
	return append([]Turn(nil), c.turns...)
}

// Last returns a copy of the n most recent turns, oldest first.
func (c Conversation) Last(n int) []Turn {
	if n <= 0 {
		return nil
	}
	if n > len(c.turns) {
		n = len(c.turns)
	}
	return append([]Turn(nil), c.turns[len(c.turns)-n:]...)
}

type Answer struct {
	Text   string             `json:"answer"`
	Source types.AnswerSource `json:"source"`

	// FallbackReason is set when the local responder answered instead of
	// the remote collaborator. It is logged, never shown.
	FallbackReason string `json:"-"`
}
