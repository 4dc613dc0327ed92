package dto

import (
	"strings"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
	"github.com/google/uuid"
)

const maxQuestionLength = 2000

type AskRequest struct {
	Question string `json:"question"`
}

func (r *AskRequest) Validate(v *validator.Validator) {
	q := strings.TrimSpace(r.Question)
	v.Check(q != "", "question", "must be provided")
	v.Check(len(q) <= maxQuestionLength, "question", "must not be more than 2000 bytes long")
}

type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresIn string    `json:"expires_in,omitempty"`
}

func NewSessionResponse(s *models.Session, ttl time.Duration) SessionResponse {
	resp := SessionResponse{SessionID: s.ID, CreatedAt: s.CreatedAt}
	if ttl > 0 {
		resp.ExpiresIn = ttl.String()
	}
	return resp
}

// ChatMessage is one websocket frame in either direction.
type ChatMessage struct {
	Type     string `json:"type"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Source   string `json:"source,omitempty"`
	Error    any    `json:"error,omitempty"`
}

const (
	ChatAsk             = "ask"
	ChatAnswer          = "answer"
	ChatError           = "error"
	ChatDatasetReloaded = "dataset_reloaded"
)
